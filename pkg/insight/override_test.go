package insight

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOverrideTriggering(t *testing.T) {
	plain := method("Plain", 1, false)
	assert.False(t, isOverrideTriggering(plain))

	virtual := method("Virtual", 1, false)
	virtual.virtual = true
	assert.True(t, isOverrideTriggering(virtual))

	abstract := method("Abstract", 1, false)
	abstract.abstract = true
	assert.True(t, isOverrideTriggering(abstract))

	override := method("Override", 1, false)
	override.override = true
	assert.True(t, isOverrideTriggering(override))
}

func TestBaseMethodOf_WalksChainToRoot(t *testing.T) {
	base := method("Shape.GetArea", 1, false)
	base.virtual = true

	mid := method("Polygon.GetArea", 2, false)
	mid.override = true
	mid.base = base

	leaf := method("Rectangle.GetArea", 3, false)
	leaf.override = true
	leaf.base = mid

	assert.True(t, baseMethodOf(leaf).Equal(base))
	assert.True(t, baseMethodOf(mid).Equal(base))
	assert.True(t, baseMethodOf(base).Equal(base))
}

func TestOverrideSiblings_FiltersUnanalyzable(t *testing.T) {
	base := method("Shape.GetArea", 1, false)
	base.virtual = true
	rectArea := method("Rectangle.GetArea", 2, false)
	notASymbol := &fakeSymbol{kind: Other}

	oracle := newFakeOracle(nil)
	oracle.overrides[base] = []Symbol{rectArea, notASymbol}

	got := overrideSiblings(context.Background(), oracle, base)

	assert.Len(t, got, 1)
	assert.True(t, got[0].Equal(rectArea))
}
