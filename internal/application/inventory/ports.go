package inventory

type IDGenerator interface {
	NewID() string
}
