package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() []*ReportNode {
	item := &ReportNode{ID: "item_a", ParentID: "series_a", Level: 3, Kind: KindItem, Name: "A-01"}
	series := &ReportNode{ID: "series_a", ParentID: "cat_a", Level: 2, Kind: KindCategory, Name: "A",
		Children: []*ReportNode{item}}
	cat := &ReportNode{ID: "cat_a", Level: 1, Kind: KindHeader, Name: "안경테",
		Children: []*ReportNode{series}}
	sub := &ReportNode{ID: "subtotal_row", Level: 0, Kind: KindSubtotal, Name: "합계"}
	other := &ReportNode{ID: "cat_b", Level: 1, Kind: KindHeader, Name: "케이스"}
	return []*ReportNode{cat, sub, other}
}

func TestWalk_PreOrderWithAncestors(t *testing.T) {
	var ids []string
	var depths []int
	Walk(sampleTree(), func(node *ReportNode, ancestors []*ReportNode) bool {
		ids = append(ids, node.ID)
		depths = append(depths, len(ancestors))
		return true
	})

	assert.Equal(t, []string{"cat_a", "series_a", "item_a", "subtotal_row", "cat_b"}, ids)
	assert.Equal(t, []int{0, 1, 2, 0, 0}, depths)
}

func TestWalk_SkipChildren(t *testing.T) {
	var ids []string
	Walk(sampleTree(), func(node *ReportNode, _ []*ReportNode) bool {
		ids = append(ids, node.ID)
		return node.ID != "cat_a"
	})

	assert.Equal(t, []string{"cat_a", "subtotal_row", "cat_b"}, ids)
}

func TestWalk_AncestorChain(t *testing.T) {
	var chain []string
	Walk(sampleTree(), func(node *ReportNode, ancestors []*ReportNode) bool {
		if node.ID == "item_a" {
			for _, a := range ancestors {
				chain = append(chain, a.ID)
			}
		}
		return true
	})

	assert.Equal(t, []string{"cat_a", "series_a"}, chain)
}

func TestIndex_Lookup(t *testing.T) {
	idx := NewIndex(sampleTree())
	require.Equal(t, 5, idx.Len())

	node, ok := idx.Lookup("series_a")
	require.True(t, ok)
	assert.Equal(t, "A", node.Name)

	_, ok = idx.Lookup("missing")
	assert.False(t, ok)

	var nilIndex *Index
	_, ok = nilIndex.Lookup("cat_a")
	assert.False(t, ok)
}

func TestReportNode_Metric(t *testing.T) {
	node := &ReportNode{Metrics: map[string]Amount{"1월": {Net: 60, Negative: -5}}}

	assert.Equal(t, Amount{Net: 60, Negative: -5}, node.Metric("1월"))
	assert.Equal(t, Amount{}, node.Metric("2월"))
	assert.Equal(t, Amount{}, (&ReportNode{}).Metric("1월"))
}

func TestReportNode_Collapsible(t *testing.T) {
	tests := []struct {
		name string
		node *ReportNode
		want bool
	}{
		{"header", &ReportNode{Kind: KindHeader}, true},
		{"category without children", &ReportNode{Kind: KindCategory}, false},
		{"category with children", &ReportNode{Kind: KindCategory, Children: []*ReportNode{{}}}, true},
		{"subtotal", &ReportNode{Kind: KindSubtotal}, false},
		{"item", &ReportNode{Kind: KindItem}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.Collapsible())
		})
	}
}

func TestAnyCompare(t *testing.T) {
	roots := sampleTree()
	assert.False(t, AnyCompare(roots))

	roots[0].Children[0].Children[0].Compare = &Amount{Net: 1}
	assert.True(t, AnyCompare(roots))
}
