package badmarker

// +updateobject:generate:colour=red
type Paint struct {
	Name string
}
