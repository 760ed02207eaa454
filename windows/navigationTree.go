// Copyright 2025 The sdb Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package windows

import (
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// TreeNodeType represents the type of node in the navigation tree
type TreeNodeType string

const (
	NodeTypeDatabase TreeNodeType = "database"
	NodeTypeTable    TreeNodeType = "table"
)

// TreeNode represents a node in the navigation tree
type TreeNode struct {
	ID       string       // Unique identifier
	NodeType TreeNodeType // Type of node
	Name     string       // Display name
	Database string       // Owning database name
	Children []string     // Child node IDs
}

// NavigationTree manages the hierarchical tree of loaded databases and
// their tables. Root nodes are databases, children are table names in
// catalog order.
type NavigationTree struct {
	nodes   map[string]*TreeNode
	rootIDs []string
	mu      sync.RWMutex
}

// NewNavigationTree creates and initializes a new navigation tree
func NewNavigationTree() *NavigationTree {
	return &NavigationTree{
		nodes:   make(map[string]*TreeNode),
		rootIDs: make([]string, 0),
	}
}

// GenerateNodeID creates a unique ID for a tree node
func (nt *NavigationTree) GenerateNodeID(nodeType TreeNodeType, database, table string) string {
	switch nodeType {
	case NodeTypeDatabase:
		return fmt.Sprintf("db:%s", database)
	case NodeTypeTable:
		return fmt.Sprintf("db:%s:table:%s", database, table)
	default:
		return ""
	}
}

// ParseNodeID extracts components from a node ID
func (nt *NavigationTree) ParseNodeID(nodeID string) (nodeType TreeNodeType, database, table string) {
	parts := strings.SplitN(nodeID, ":", 4)

	if len(parts) >= 2 && parts[0] == "db" {
		nodeType = NodeTypeDatabase
		database = parts[1]
	}

	if len(parts) >= 4 && parts[2] == "table" {
		nodeType = NodeTypeTable
		table = parts[3]
	}

	return
}

// AddDatabase appends a top-level node for a loaded database. Adding the
// same database twice is a no-op.
func (nt *NavigationTree) AddDatabase(name string) {
	nt.mu.Lock()
	defer nt.mu.Unlock()

	nodeID := nt.GenerateNodeID(NodeTypeDatabase, name, "")
	if _, exists := nt.nodes[nodeID]; exists {
		return
	}

	nt.nodes[nodeID] = &TreeNode{
		ID:       nodeID,
		NodeType: NodeTypeDatabase,
		Name:     name,
		Database: name,
		Children: make([]string, 0),
	}
	nt.rootIDs = append(nt.rootIDs, nodeID)
}

// AddTables appends child table nodes under the named database node in the
// given order. The caller must have added the database node first.
func (nt *NavigationTree) AddTables(database string, tables []string) {
	nt.mu.Lock()
	defer nt.mu.Unlock()

	dbNodeID := nt.GenerateNodeID(NodeTypeDatabase, database, "")
	dbNode, exists := nt.nodes[dbNodeID]
	if !exists {
		return
	}

	for _, table := range tables {
		nodeID := nt.GenerateNodeID(NodeTypeTable, database, table)
		nt.nodes[nodeID] = &TreeNode{
			ID:       nodeID,
			NodeType: NodeTypeTable,
			Name:     table,
			Database: database,
			Children: nil,
		}
		dbNode.Children = append(dbNode.Children, nodeID)
	}
}

// GetChildren returns the child node IDs for a given parent node
// Returns root nodes if nodeID is empty
func (nt *NavigationTree) GetChildren(nodeID widget.TreeNodeID) []widget.TreeNodeID {
	nt.mu.RLock()
	defer nt.mu.RUnlock()

	// Root level - return databases
	if nodeID == "" {
		return nt.rootIDs
	}

	node, exists := nt.nodes[nodeID]
	if !exists {
		return []widget.TreeNodeID{}
	}

	return node.Children
}

// IsBranch returns true if the node can have children
func (nt *NavigationTree) IsBranch(nodeID widget.TreeNodeID) bool {
	nt.mu.RLock()
	defer nt.mu.RUnlock()

	// Root is always a branch
	if nodeID == "" {
		return true
	}

	node, exists := nt.nodes[nodeID]
	if !exists {
		return false
	}

	// Databases are branches, tables are leaves
	return node.NodeType == NodeTypeDatabase
}

// GetNode retrieves a node by ID
func (nt *NavigationTree) GetNode(nodeID widget.TreeNodeID) *TreeNode {
	nt.mu.RLock()
	defer nt.mu.RUnlock()

	return nt.nodes[nodeID]
}

// UpdateNodeDisplay updates the visual representation of a tree node
func (nt *NavigationTree) UpdateNodeDisplay(nodeID widget.TreeNodeID, obj fyne.CanvasObject, branch bool) {
	node := nt.GetNode(nodeID)
	if node == nil {
		return
	}

	box, ok := obj.(*fyne.Container)
	if !ok || len(box.Objects) < 2 {
		return
	}

	icon, ok := box.Objects[0].(*widget.Icon)
	if ok {
		switch node.NodeType {
		case NodeTypeDatabase:
			icon.SetResource(theme.StorageIcon())
		case NodeTypeTable:
			icon.SetResource(theme.DocumentIcon())
		}
	}

	label, ok := box.Objects[1].(*widget.Label)
	if ok {
		label.SetText(node.Name)
	}
}
