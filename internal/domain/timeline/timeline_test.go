package timeline

import (
	"testing"

	"github.com/example/cashew-corner/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInput(status string) Input {
	return Input{
		Status:       status,
		OrderDate:    "2025-03-01",
		ConfirmedAt:  "2025-03-01T10:15:00",
		DeliveryDate: "2025-03-08",
		UpdatedAt:    "2025-03-04T08:00:00",
	}
}

// ============================================
// Derive Tests
// ============================================

func TestDerive_Shipped(t *testing.T) {
	steps := Derive(testInput("SHIPPED"))

	require.Len(t, steps, 5)
	for i := 0; i <= 3; i++ {
		assert.True(t, steps[i].Completed, "step %d", i)
	}
	assert.True(t, steps[3].Active)
	assert.False(t, steps[4].Completed)
	assert.False(t, steps[4].Active)
	assert.Equal(t, "On the way", steps[3].Date)
	assert.Equal(t, "Expected: Mar 8, 2025", steps[4].Date)
}

func TestDerive_Cancelled(t *testing.T) {
	tests := []struct {
		name  string
		input Input
	}{
		{"recent", testInput("CANCELLED")},
		{"old order", Input{Status: "cancelled", OrderDate: "2019-01-05", UpdatedAt: "2019-01-06T00:00:00"}},
		{"no dates", Input{Status: "Cancelled"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := Derive(tt.input)

			require.Len(t, steps, 2)
			assert.Equal(t, "Order Placed", steps[0].Title)
			assert.True(t, steps[0].Completed)
			assert.False(t, steps[0].Active)
			assert.Equal(t, "Order Cancelled", steps[1].Title)
			assert.False(t, steps[1].Completed)
			assert.True(t, steps[1].Active)
		})
	}
}

func TestDerive_CancelledDateFallsBackToConfirmedAt(t *testing.T) {
	in := testInput("CANCELLED")
	in.UpdatedAt = ""

	steps := Derive(in)

	assert.Equal(t, "Mar 1, 2025", steps[1].Date)
}

func TestDerive_Pending(t *testing.T) {
	steps := Derive(testInput("pending"))

	require.Len(t, steps, 5)
	assert.True(t, steps[0].Completed)
	assert.True(t, steps[0].Active)
	assert.Equal(t, "Mar 1, 2025", steps[0].Date)
	for i := 1; i < 4; i++ {
		assert.False(t, steps[i].Completed)
		assert.Equal(t, "Pending", steps[i].Date)
	}
}

func TestDerive_Delivered(t *testing.T) {
	steps := Derive(testInput("Delivered"))

	for _, s := range steps {
		assert.True(t, s.Completed)
	}
	assert.True(t, steps[4].Active)
	assert.Equal(t, "Mar 8, 2025", steps[4].Date)
	assert.Equal(t, "Mar 1, 2025", steps[1].Date)
	assert.Equal(t, "In Progress", steps[2].Date)
}

func TestDerive_UnknownStatus(t *testing.T) {
	in := testInput("ON_HOLD")
	in.DeliveryDate = ""

	steps := Derive(in)

	require.Len(t, steps, 5)
	for _, s := range steps {
		assert.False(t, s.Completed)
		assert.False(t, s.Active)
	}
	assert.Equal(t, "Pending", steps[4].Date)
}

func TestFromSalesOrder(t *testing.T) {
	so := model.SalesOrder{Status: "CONFIRMED", OrderDate: "2025-03-01", CreatedAt: "2025-03-02T09:00:00", DeliveryDate: "2025-03-09"}

	steps := Derive(FromSalesOrder(so))

	assert.True(t, steps[1].Active)
	assert.Equal(t, "Mar 2, 2025", steps[1].Date)
}

// ============================================
// Status Helper Tests
// ============================================

func TestCurrentStep(t *testing.T) {
	tests := []struct {
		status string
		want   int
	}{
		{"PENDING", 0},
		{"confirmed", 1},
		{"Processing", 2},
		{"SHIPPED", 3},
		{"delivered", 4},
		{"CANCELLED", -1},
		{"RETURNED", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentStep(tt.status))
		})
	}
}

func TestFormatStatus(t *testing.T) {
	assert.Equal(t, "Shipped", FormatStatus("SHIPPED"))
	assert.Equal(t, "Pending", FormatStatus("pending"))
	assert.Equal(t, "", FormatStatus(""))
	assert.Equal(t, "Émis", FormatStatus("éMIS"))
	assert.Equal(t, "Ürün", FormatStatus("ÜRÜN"))
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-12-25", "Dec 25, 2025"},
		{"2025-01-05T14:30:00", "Jan 5, 2025"},
		{"2025-01-05T14:30:00.123456", "Jan 5, 2025"},
		{"2025-01-05T14:30:00Z", "Jan 5, 2025"},
		{"", ""},
		{"soon", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.in))
		})
	}
}
