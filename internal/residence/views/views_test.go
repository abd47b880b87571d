package views

import (
	"bytes"
	"html/template"
	"strings"
	"testing"

	"polynomial-residence/internal/residence/catalog"
	"polynomial-residence/internal/residence/floorplan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViews(t *testing.T) (*Views, *catalog.Catalog) {
	t.Helper()
	c := catalog.Default()
	l, err := floorplan.Build(c)
	require.NoError(t, err)
	v, err := New(c, l)
	require.NoError(t, err)
	return v, c
}

var textTemplate = template.Must(template.New("text").Parse(`{{.}}`))

// escaped renders s the way a template prints dynamic text.
func escaped(s string) string {
	var b strings.Builder
	_ = textTemplate.Execute(&b, s)
	return b.String()
}

func TestRoomDetailShowsEveryRoomVerbatim(t *testing.T) {
	v, c := newViews(t)

	for _, room := range c.Rooms() {
		t.Run(room.ID, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, v.RoomDetail(&buf, room))
			html := buf.String()

			assert.Contains(t, html, "<h1>"+room.Name+"</h1>")
			assert.Contains(t, html, escaped(room.Dimensions))
			assert.Contains(t, html, escaped(room.AreaPolynomial))
			assert.Contains(t, html, escaped(room.PerimeterPolynomial))
			assert.Contains(t, html, escaped(room.Verification))
			assert.Contains(t, html, "Calculated by multiplying length × width expressions")
			assert.Contains(t, html, "Calculated by 2(length + width)")
			assert.Contains(t, html, "Mathematical Verification (x = 2)")
			assert.Contains(t, html, `action="/back"`)
			assert.NotContains(t, html, `action="/nav/`)
		})
	}
}

func TestRoomDetailCostSection(t *testing.T) {
	v, c := newViews(t)

	living, err := c.Get("living-room")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, v.RoomDetail(&buf, living))
	html := buf.String()

	assert.Contains(t, html, escaped("8x³ + 18x² + 17x + 6"))
	assert.Contains(t, html, `class="panel cost-analysis"`)
	assert.Contains(t, html, "176 sq ft × $2.49/sq ft")
	assert.Contains(t, html, "54 ft × $5.49/ft")
	assert.Contains(t, html, "$438.24")
	assert.Contains(t, html, "$296.46")
	assert.Contains(t, html, "$250.00")
	assert.Contains(t, html, "$984.70")

	bathroom, err := c.Get("bathroom")
	require.NoError(t, err)
	require.Nil(t, bathroom.CostBreakdown)
	buf.Reset()
	require.NoError(t, v.RoomDetail(&buf, bathroom))
	assert.NotContains(t, buf.String(), "cost-analysis")
	assert.NotContains(t, buf.String(), "Total Cost:")
}

func TestRoomDetailPartialCost(t *testing.T) {
	v, c := newViews(t)

	bedroom, err := c.Get("master-bedroom")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, v.RoomDetail(&buf, bedroom))
	html := buf.String()

	assert.Contains(t, html, "Carpet Material")
	assert.Contains(t, html, "$488.04")
	assert.NotContains(t, html, "Crown Molding")
	assert.NotContains(t, html, "Installation Fee")
}

func TestHomeListsRoomsInFeedOrder(t *testing.T) {
	v, c := newViews(t)

	var buf bytes.Buffer
	require.NoError(t, v.Home(&buf))
	html := buf.String()

	assert.Contains(t, html, "1,260 sq ft")
	assert.Contains(t, html, "7 Rooms")
	assert.Contains(t, html, escaped("4 Bedrooms/Bathrooms + 3 Common Areas"))
	assert.Contains(t, html, "30ft × 42ft")
	assert.Contains(t, html, `aria-current="page">Home</button>`)

	last := -1
	for _, id := range c.IDs() {
		i := strings.Index(html, `action="/rooms/`+id+`/open"`)
		require.Greater(t, i, last, id)
		last = i
	}
}

func TestTechnicalGroupsWings(t *testing.T) {
	v, _ := newViews(t)

	var buf bytes.Buffer
	require.NoError(t, v.Technical(&buf))
	html := buf.String()

	private := strings.Index(html, "<h3>Private Wing</h3>")
	common := strings.Index(html, "<h3>Common Wing</h3>")
	require.Greater(t, private, 0)
	require.Greater(t, common, private)
	assert.Greater(t, strings.Index(html, `data-room-id="bedroom-2"`), private)
	assert.Less(t, strings.Index(html, `data-room-id="bedroom-2"`), common)
	assert.Greater(t, strings.Index(html, `data-room-id="kitchen"`), common)
	assert.Contains(t, html, "30ft Width x 42ft Length = 1,260 sq ft Total Area")
	assert.Contains(t, html, "View Full Details")
}

func TestCostAnalysisInvoice(t *testing.T) {
	v, _ := newViews(t)

	var buf bytes.Buffer
	require.NoError(t, v.CostAnalysis(&buf))
	html := buf.String()

	a := strings.Index(html, "ITEM A: "+escaped("Living Room (Carpet + Crown Molding)"))
	b := strings.Index(html, "ITEM B: Master Bedroom (Carpet Only)")
	require.GreaterOrEqual(t, a, 0)
	assert.Greater(t, b, a)
	assert.Contains(t, html, "Area: 176 sq ft | Perimeter: 54 ft")
	assert.Contains(t, html, "Carpet Material ($2.49/sq ft):")
	assert.Contains(t, html, "Crown Molding ($5.49/ft):")
	assert.Contains(t, html, "$1,472.74")
	assert.Contains(t, html, "Date: November 23, 2025")
	assert.Contains(t, html, "Carpet material only")
}

func TestFloorPlanAndPrintEmbedSVG(t *testing.T) {
	v, _ := newViews(t)
	svg := `<svg xmlns="http://www.w3.org/2000/svg"><rect id="hallway"/></svg>`

	var buf bytes.Buffer
	require.NoError(t, v.FloorPlan(&buf, svg))
	assert.Contains(t, buf.String(), svg)
	assert.Contains(t, buf.String(), `id="floor-plan"`)
	assert.Contains(t, buf.String(), `aria-current="page">Floor Plan</button>`)

	buf.Reset()
	require.NoError(t, v.Print(&buf, svg))
	assert.Contains(t, buf.String(), svg)
	assert.Contains(t, buf.String(), `onload="window.print()"`)
	assert.Contains(t, buf.String(), "GRAND TOTAL:")
	assert.Contains(t, buf.String(), "Total House Specifications")
}
