package league

// League is a competition games are grouped under.
type League struct {
	ID   int64
	Name string
}
