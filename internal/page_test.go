package internal

import (
	"bytes"
	"testing"

	"github.com/antchfx/htmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func renderPage(t *testing.T, scene Scene) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WritePage(&buf, scene))
	doc, err := htmlquery.Parse(&buf)
	require.NoError(t, err)
	return doc
}

func TestWritePageSelector(t *testing.T) {
	c := newTestController(t)
	require.NoError(t, c.SelectSubject("m2"))
	doc := renderPage(t, c.Scene())

	options := htmlquery.Find(doc, "//select[@id='subject']/option")
	require.Len(t, options, 3)
	for i, want := range []string{"m1", "m2", "m3"} {
		assert.Equal(t, want, htmlquery.SelectAttr(options[i], "value"))
		assert.Equal(t, want, htmlquery.InnerText(options[i]))
	}

	selected := htmlquery.Find(doc, "//select[@id='subject']/option[@selected]")
	require.Len(t, selected, 1)
	assert.Equal(t, "m2", htmlquery.SelectAttr(selected[0], "value"))

	assert.NotNil(t, htmlquery.FindOne(doc, "//div[@id='tooltip']"))
}

func TestWritePageLayers(t *testing.T) {
	c := newTestController(t)
	doc := renderPage(t, c.Scene())

	nights := htmlquery.Find(doc, "//*[@class='night']")
	require.Len(t, nights, 1)
	assert.Equal(t, "720", htmlquery.SelectAttr(nights[0], "data-lo"))
	assert.Equal(t, "1440", htmlquery.SelectAttr(nights[0], "data-hi"))
	// 720/2160 and 1440/2160 of the 700px wide plot, offset by the left margin.
	assert.Equal(t, "303.33", htmlquery.SelectAttr(nights[0], "x"))
	assert.Equal(t, "233.33", htmlquery.SelectAttr(nights[0], "width"))

	markers := htmlquery.Find(doc, "//*[@class='marker']")
	require.Len(t, markers, 5)
	assert.Equal(t, "Day: 0, Temp: 37", htmlquery.SelectAttr(markers[0], "data-tooltip"))
	assert.Equal(t, "70.00", htmlquery.SelectAttr(markers[0], "cx"))
	assert.Equal(t, "4", htmlquery.SelectAttr(markers[0], "r"))

	line := htmlquery.FindOne(doc, "//*[@class='line']")
	require.NotNil(t, line)
	assert.Equal(t, c.Scene().Line, htmlquery.SelectAttr(line, "d"))

	xTicks := htmlquery.Find(doc, "//*[@class='x-axis']/*[@class='tick']")
	assert.Len(t, xTicks, len(c.Scene().XTicks))
	yTicks := htmlquery.Find(doc, "//*[@class='y-axis']/*[@class='tick']")
	assert.Len(t, yTicks, len(c.Scene().YTicks))

	brush := htmlquery.FindOne(doc, "//*[@class='brush']")
	require.NotNil(t, brush)
	assert.Equal(t, "0", htmlquery.SelectAttr(brush, "width"))
}

func TestWriteSVGAfterZoom(t *testing.T) {
	c := newTestController(t)
	c.SetAnnotations([]Annotation{{Minute: 1000, Label: "Injection <IP>"}})
	x := c.XScale()
	require.True(t, c.ApplyZoom(x.Scale(700), x.Scale(1450)))

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, c.Scene()))
	doc, err := htmlquery.Parse(&buf)
	require.NoError(t, err)

	assert.Len(t, htmlquery.Find(doc, "//*[@class='marker']"), 3)
	assert.Len(t, htmlquery.Find(doc, "//*[@class='night']"), 1)
	assert.Nil(t, htmlquery.FindOne(doc, "//select"), "the fragment carries only the chart")

	label := htmlquery.FindOne(doc, "//*[@class='annotation-label']")
	require.NotNil(t, label)
	assert.Equal(t, "Injection <IP>", htmlquery.InnerText(label))

	brush := htmlquery.FindOne(doc, "//*[@class='brush']")
	require.NotNil(t, brush)
	assert.Equal(t, "0", htmlquery.SelectAttr(brush, "width"), "the brush is cleared after zooming")
}
