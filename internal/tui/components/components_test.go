package components

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormValues(t *testing.T) {
	f := NewForm(
		Field{Key: "amount", Label: "Amount", Kind: FieldNumber, Default: "$1,500.50"},
		Field{Key: "count", Label: "Count", Kind: FieldInteger, Default: "3"},
		Field{Key: "insured", Label: "Insured", Kind: FieldBool, Default: "Yes"},
		Field{Key: "stress", Label: "Stress", Kind: FieldChoice, Default: "high", Options: []string{"Low", "Medium", "High"}},
	)
	v := f.Values()

	amount, err := v.Decimal("amount")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("1500.50")))

	count, err := v.Int("count")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	insured, err := v.Bool("insured")
	require.NoError(t, err)
	assert.True(t, insured)

	stress, err := v.Choice("stress")
	require.NoError(t, err)
	assert.Equal(t, "High", stress, "choice is canonicalized")
}

func TestFormValueErrors(t *testing.T) {
	f := NewForm(
		Field{Key: "weight", Label: "Weight", Kind: FieldNumber, Default: "heavy"},
		Field{Key: "smoker", Label: "Smoker", Kind: FieldBool, Default: "sometimes"},
		Field{Key: "alcohol", Label: "Alcohol", Kind: FieldChoice, Default: "daily", Options: []string{"None", "Frequent"}},
	)
	v := f.Values()

	_, err := v.Float("weight")
	assert.EqualError(t, err, "Weight must be a number")
	_, err = v.Bool("smoker")
	assert.EqualError(t, err, "Smoker must be yes or no")
	_, err = v.Choice("alcohol")
	assert.EqualError(t, err, "Alcohol must be one of None, Frequent")
}

func TestFormEmptyNumbersAreZero(t *testing.T) {
	v := NewForm(Field{Key: "copay", Label: "Copay", Kind: FieldNumber}).Values()

	d, err := v.Decimal("copay")
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}

func TestFormFocus(t *testing.T) {
	f := NewForm(Field{Key: "a"}, Field{Key: "b"})

	f.Next()
	assert.Equal(t, 1, f.Focused())
	f.Next()
	assert.Equal(t, 0, f.Focused())
	f.Prev()
	assert.Equal(t, 1, f.Focused())
	assert.Contains(t, f.View(), "> ")
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 2))

	cards := []*MetricCard{
		NewMetricCard("Billed", "$140.00"),
		NewMetricCard("Allowed", "$84.00").WithNote("in network"),
		NewMetricCard("You pay", "$16.80"),
	}
	out := MetricGrid(cards, 2)

	for _, s := range []string{"Billed", "$84.00", "in network", "$16.80"} {
		assert.Contains(t, out, s)
	}
	assert.Equal(t, "Billed: $140.00", stripANSI(cards[0].RenderCompact()))
}

func stripANSI(s string) string {
	out := make([]rune, 0, len(s))
	skip := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			skip = true
		case skip && r == 'm':
			skip = false
		case !skip:
			out = append(out, r)
		}
	}
	return string(out)
}
