package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTransaction(t *testing.T) {
	txn := NewTransaction("u1", []string{"B2", "B1", "B2", "", "B3"})
	assert.Equal(t, []string{"B1", "B2", "B3"}, txn.Books)
	assert.Equal(t, 3, txn.Size())
}

func TestTransaction_Contains(t *testing.T) {
	txn := NewTransaction("u1", []string{"B1", "B3", "B5"})

	assert.True(t, txn.Contains([]string{"B1"}))
	assert.True(t, txn.Contains([]string{"B1", "B5"}))
	assert.True(t, txn.Contains(nil))
	assert.False(t, txn.Contains([]string{"B2"}))
	assert.False(t, txn.Contains([]string{"B1", "B2"}))
	assert.False(t, txn.Contains([]string{"B1", "B3", "B5", "B7"}))
}

func TestItemsetKeyRoundTrip(t *testing.T) {
	is := NewItemset([]string{"B2", "B1"}, 3, 4)
	assert.Equal(t, []string{"B1", "B2"}, is.Items)
	assert.InDelta(t, 0.75, is.Support, 1e-9)
	assert.Equal(t, is.Items, ItemsFromKey(is.Key()))
	assert.Nil(t, ItemsFromKey(""))
}

func TestAssociationRule_Strength(t *testing.T) {
	tests := []struct {
		want RuleStrength
		lift float64
	}{
		{want: StrengthWeak, lift: 0.5},
		{want: StrengthWeak, lift: 1.19},
		{want: StrengthModerate, lift: 1.2},
		{want: StrengthModerate, lift: 1.99},
		{want: StrengthStrong, lift: 2.0},
		{want: StrengthStrong, lift: 10},
	}
	for _, tt := range tests {
		rule := AssociationRule{Lift: tt.lift}
		assert.Equal(t, tt.want, rule.Strength(), "lift %v", tt.lift)
	}
}

func TestEvent_Completed(t *testing.T) {
	borrowed := time.Date(2024, 3, 4, 14, 0, 0, 0, time.UTC)
	before := borrowed.Add(-time.Hour)
	after := borrowed.Add(time.Hour)

	assert.False(t, Event{BorrowedAt: borrowed}.Completed())
	assert.False(t, Event{BorrowedAt: borrowed, ReturnedAt: &before}.Completed())
	assert.True(t, Event{BorrowedAt: borrowed, ReturnedAt: &after}.Completed())
}
