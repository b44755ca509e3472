// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package abcsem

// SemanticDataMap is the analyzer's output: node id to the typed data
// computed for that node. It references the AST only by integer id, so it
// can be rebuilt after a mutation without chasing stale pointers.
type SemanticDataMap struct {
	entries map[uint32]Data
}

// NewSemanticDataMap returns an empty map ready for Set/Get.
func NewSemanticDataMap() *SemanticDataMap {
	return &SemanticDataMap{entries: make(map[uint32]Data)}
}

// Set records d for nodeID, overwriting any prior entry.
func (m *SemanticDataMap) Set(nodeID uint32, d Data) {
	m.entries[nodeID] = d
}

// Get returns the data recorded for nodeID, if any. A failed analysis
// leaves no entry, so callers must check ok.
func (m *SemanticDataMap) Get(nodeID uint32) (Data, bool) {
	d, ok := m.entries[nodeID]
	return d, ok
}

// Len reports how many nodes have semantic data recorded.
func (m *SemanticDataMap) Len() int {
	return len(m.entries)
}

// Delete removes any entry for nodeID. Used when a node is re-analyzed and
// found invalid after previously succeeding.
func (m *SemanticDataMap) Delete(nodeID uint32) {
	delete(m.entries, nodeID)
}
