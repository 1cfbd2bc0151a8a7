package node

// Description is opaque, purely informational metadata associated with a
// node: a human name, a kind tag, and a free-text description. It plays no
// role in scheduling or data flow; it is reproduced in error reports so a
// NodeUpdateError can name the node that produced it in human terms, not
// just by id.
type Description struct {
	Name        string
	Kind        string
	Description string
}
