package diagram

import (
	json "github.com/goccy/go-json"
)

// MarshalJSON serializes the item together with its children, which are
// otherwise unexported to preserve exclusive ownership.
func (it *Item) MarshalJSON() ([]byte, error) {
	type Alias Item
	return json.Marshal(struct {
		*Alias
		Children []*Item `json:"children,omitempty"`
	}{(*Alias)(it), it.children})
}

// UnmarshalJSON restores an item subtree, rewiring the parent
// back-references that the wire form omits.
func (it *Item) UnmarshalJSON(data []byte) error {
	type Alias Item
	aux := struct {
		*Alias
		Children []*Item `json:"children,omitempty"`
	}{Alias: (*Alias)(it)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	for _, c := range aux.Children {
		it.AddChild(c)
	}
	return nil
}

// Marshal serializes a diagram (structure, options, geometry) to indented
// JSON.
func Marshal(d *Diagram) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal restores a diagram snapshot produced by [Marshal], rewiring
// the diagram back-references through every root subtree.
func Unmarshal(data []byte) (*Diagram, error) {
	var d Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	roots := d.Roots
	d.Roots = nil
	for _, r := range roots {
		d.AddRoot(r)
	}
	return &d, nil
}
