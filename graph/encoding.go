package graph

import (
	"github.com/ugorji/go/codec"
)

/*
Wire structs mirror Node/Edge/PropertyMap but with plain, ordered fields
so github.com/ugorji/go/codec (the pack's binary-codec idiom, see
Adalanche's modules/persistence/database.go) can round-trip the
insertion-ordered property list deterministically - a plain Go map would
lose that order.
*/

type wireProp struct {
	K  string
	T  ValueKind
	S  string
	I  int64
	F  float64
	B  bool
	SL []string
	IL []int64
}

type wireNode struct {
	ID    uint64
	Kind  NodeKind
	Props []wireProp
}

type wireEdge struct {
	ID     uint64
	Source uint64
	Target uint64
	Kind   EdgeKind
	Props  []wireProp
}

var cborHandle = &codec.CborHandle{}

func propsToWire(p *PropertyMap) []wireProp {
	if p == nil {
		return nil
	}
	out := make([]wireProp, 0, p.Len())
	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		out = append(out, wireProp{
			K: k, T: v.Kind, S: v.Str, I: v.Int, F: v.Float, B: v.Bool,
			SL: v.StrList, IL: v.IntList,
		})
	}
	return out
}

func wireToProps(w []wireProp) *PropertyMap {
	p := NewPropertyMap()
	for _, wp := range w {
		p.Set(wp.K, Value{Kind: wp.T, Str: wp.S, Int: wp.I, Float: wp.F, Bool: wp.B, StrList: wp.SL, IntList: wp.IL})
	}
	return p
}

/*
encodeNode serializes a node record for persistence.
*/
func encodeNode(n *Node) ([]byte, error) {
	w := wireNode{ID: n.ID, Kind: n.Kind, Props: propsToWire(n.Props)}
	var buf []byte
	enc := codec.NewEncoderBytes(&buf, cborHandle)
	if err := enc.Encode(w); err != nil {
		return nil, err
	}
	return buf, nil
}

func decodeNode(data []byte) (*Node, error) {
	var w wireNode
	dec := codec.NewDecoderBytes(data, cborHandle)
	if err := dec.Decode(&w); err != nil {
		return nil, err
	}
	return &Node{ID: w.ID, Kind: w.Kind, Props: wireToProps(w.Props)}, nil
}

/*
encodeEdge serializes an edge record for persistence.
*/
func encodeEdge(e *Edge) ([]byte, error) {
	w := wireEdge{ID: e.ID, Source: e.Source, Target: e.Target, Kind: e.Kind, Props: propsToWire(e.Props)}
	var buf []byte
	enc := codec.NewEncoderBytes(&buf, cborHandle)
	if err := enc.Encode(w); err != nil {
		return nil, err
	}
	return buf, nil
}

func decodeEdge(data []byte) (*Edge, error) {
	var w wireEdge
	dec := codec.NewDecoderBytes(data, cborHandle)
	if err := dec.Decode(&w); err != nil {
		return nil, err
	}
	return &Edge{ID: w.ID, Source: w.Source, Target: w.Target, Kind: w.Kind, Props: wireToProps(w.Props)}, nil
}
