package livesync

// SubscriptionState bir store aboneliğinin yaşam döngüsü:
// Closed → Opening → Subscribed → Closed. Otomatik reconnect yoktur;
// kanal kapanınca store Closed durumuna döner ve yeniden Start çağrılabilir.
type SubscriptionState int32

const (
	StateClosed SubscriptionState = iota
	StateOpening
	StateSubscribed
)

func (s SubscriptionState) String() string {
	switch s {
	case StateOpening:
		return "opening"
	case StateSubscribed:
		return "subscribed"
	default:
		return "closed"
	}
}
