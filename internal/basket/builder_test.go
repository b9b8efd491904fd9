package basket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliomine/bibliomine/internal/model"
)

func borrow(user, book string, at time.Time) model.Event {
	return model.Event{UserID: user, BookID: book, Action: model.ActionBorrow, BorrowedAt: at}
}

func TestBuilder_Build(t *testing.T) {
	day1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		config Config
		events []model.Event
		want   []model.Transaction
	}{
		{
			name:   "empty input yields empty output",
			config: DefaultConfig(),
			events: nil,
			want:   []model.Transaction{},
		},
		{
			name:   "groups by user and dedupes books",
			config: DefaultConfig(),
			events: []model.Event{
				borrow("u1", "B2", day1),
				borrow("u1", "B1", day1),
				borrow("u1", "B1", day2),
				borrow("u2", "B3", day1),
			},
			want: []model.Transaction{
				{GroupKey: "u1", Books: []string{"B1", "B2"}},
				{GroupKey: "u2", Books: []string{"B3"}},
			},
		},
		{
			name:   "ignores non-borrow events",
			config: DefaultConfig(),
			events: []model.Event{
				borrow("u1", "B1", day1),
				{UserID: "u1", BookID: "B2", Action: model.ActionPreview, BorrowedAt: day1},
				{UserID: "u2", BookID: "B3", Action: model.ActionReturn, BorrowedAt: day1},
			},
			want: []model.Transaction{
				{GroupKey: "u1", Books: []string{"B1"}},
			},
		},
		{
			name:   "min books drops small baskets",
			config: Config{GroupBy: GroupByUser, MinBooks: 2},
			events: []model.Event{
				borrow("u1", "B1", day1),
				borrow("u1", "B2", day1),
				borrow("u2", "B3", day1),
			},
			want: []model.Transaction{
				{GroupKey: "u1", Books: []string{"B1", "B2"}},
			},
		},
		{
			name:   "user-day grouping splits by calendar day",
			config: Config{GroupBy: GroupByUserDay},
			events: []model.Event{
				borrow("u1", "B1", day1),
				borrow("u1", "B2", day2),
			},
			want: []model.Transaction{
				{GroupKey: "u1@2024-03-01", Books: []string{"B1"}},
				{GroupKey: "u1@2024-03-02", Books: []string{"B2"}},
			},
		},
		{
			name:   "skips events missing identifiers",
			config: DefaultConfig(),
			events: []model.Event{
				borrow("", "B1", day1),
				borrow("u1", "", day1),
				borrow("u1", "B1", day1),
			},
			want: []model.Transaction{
				{GroupKey: "u1", Books: []string{"B1"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBuilder(tt.config).Build(tt.events)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuilder_BuildDeterministic(t *testing.T) {
	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	events := []model.Event{
		borrow("u3", "B3", day),
		borrow("u1", "B1", day),
		borrow("u2", "B2", day),
		borrow("u1", "B4", day),
	}

	builder := NewBuilder(DefaultConfig())
	first := builder.Build(events)
	second := builder.Build(events)
	require.Equal(t, first, second)

	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].GroupKey, first[i].GroupKey)
	}
}
