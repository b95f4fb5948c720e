package orders

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOrderNumber(t *testing.T) {
	at := time.UnixMilli(1730912345678)

	got := formatOrderNumber(at, 42)

	assert.Equal(t, "BUZZ1730912345678042", got)
}

func TestGenerateOrderNumberShape(t *testing.T) {
	number := GenerateOrderNumber()

	assert.True(t, strings.HasPrefix(number, "BUZZ"))
	assert.Regexp(t, regexp.MustCompile(`^BUZZ\d{16}$`), number)
}

func TestSimulatedAssigner(t *testing.T) {
	assigner := NewSimulatedAssigner()

	for i := 0; i < 20; i++ {
		partner := assigner.Assign()
		require.Contains(t, partnerNames, partner.Name)
		assert.Regexp(t, regexp.MustCompile(`^\+91 \d{5}-\d{5}$`), partner.Phone)
	}
}
