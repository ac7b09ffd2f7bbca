package livesync

// Entity reconcile edilebilen görünüm modelleri.
type Entity interface {
	EntityID() uint
}

// Upsert gelen entity'yi listeye işler: aynı id varsa yerinde değiştirir,
// yoksa başa ekler. Bu kural insert'i update ile idempotent yapar ve sırası
// bozuk gelen insert/update teslimatlarına karşı korur. Saf dönüşümdür,
// girdi dilimini değiştirmez.
func Upsert[E Entity](list []E, e E) []E {
	for i := range list {
		if list[i].EntityID() == e.EntityID() {
			next := make([]E, len(list))
			copy(next, list)
			next[i] = e
			return next
		}
	}

	next := make([]E, 0, len(list)+1)
	next = append(next, e)
	next = append(next, list...)
	return next
}

// Remove id'si eşleşen entity'yi listeden çıkarır. Id listede yoksa girdi
// dilimi aynen döner.
func Remove[E Entity](list []E, id uint) []E {
	for i := range list {
		if list[i].EntityID() == id {
			next := make([]E, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			return next
		}
	}
	return list
}
