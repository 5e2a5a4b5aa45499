package network

import "fmt"

// Link is a weighted connection from one node to another. It may be marked
// recurrent when its source node lies on a cycle back to itself.
type Link struct {
	Weight      float64
	InNode      *NNode
	OutNode     *NNode
	IsRecurrent bool
}

// NewLink creates a new link with the given weight connecting innode to
// outnode.
func NewLink(weight float64, innode, outnode *NNode, recurrent bool) *Link {
	return &Link{
		Weight:      weight,
		InNode:      innode,
		OutNode:     outnode,
		IsRecurrent: recurrent,
	}
}

func (l *Link) String() string {
	return fmt.Sprintf("[Link: (%s <-> %s), weight: %.3f, recurrent: %t]",
		l.InNode, l.OutNode, l.Weight, l.IsRecurrent)
}
