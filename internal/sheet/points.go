package sheet

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/globalite/go-macrobrief/internal/tabular"
)

// ReadPoints validates the points table into an ordered, bounded set of
// content points. Fully-blank rows are skipped; every other row must
// carry a unique order in [1, MaxPoints], a title, and content. Row
// numbers in error messages count from the top of the sheet, header
// included, so they match what the author sees in the spreadsheet UI.
func ReadPoints(t tabular.Table) ([]Point, error) {
	index, err := requireColumns(t, "points", "order", "title", "content", "image_path", "image_caption")
	if err != nil {
		return nil, err
	}

	var points []Point
	for i := 1; i < t.Len(); i++ {
		row := t.Row(i)
		rowNumber := i + 1

		orderText := cell(row, index, "order")
		title := cell(row, index, "title")
		content := cell(row, index, "content")
		imagePath := cell(row, index, "image_path")
		imageCaption := cell(row, index, "image_caption")
		source := cell(row, index, "source")

		if orderText == "" && title == "" && content == "" &&
			imagePath == "" && imageCaption == "" && source == "" {
			continue
		}

		order, err := parseOrder(orderText, rowNumber)
		if err != nil {
			return nil, err
		}
		if title == "" {
			return nil, fmt.Errorf("%w %d in points sheet: missing title", ErrRow, rowNumber)
		}
		if content == "" {
			return nil, fmt.Errorf("%w %d in points sheet: missing content", ErrRow, rowNumber)
		}

		points = append(points, Point{
			Order:        order,
			Title:        title,
			Content:      content,
			ImagePath:    imagePath,
			ImageCaption: imageCaption,
			Source:       source,
		})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no points found, add at least one row to the points sheet", ErrCardinality)
	}

	sort.SliceStable(points, func(a, b int) bool { return points[a].Order < points[b].Order })

	if dupes := duplicateOrders(points); dupes != "" {
		return nil, fmt.Errorf("%w: duplicate order values found: %s", ErrCardinality, dupes)
	}
	if len(points) > MaxPoints {
		return nil, fmt.Errorf("%w: found %d points, the maximum is %d", ErrCardinality, len(points), MaxPoints)
	}

	return points, nil
}

// parseOrder parses an order cell as a plain integer in [1, MaxPoints].
func parseOrder(text string, rowNumber int) (int, error) {
	if text == "" {
		return 0, fmt.Errorf("%w %d in points sheet: missing order", ErrRow, rowNumber)
	}
	order, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w %d in points sheet: order %q must be an integer between 1 and %d",
			ErrRow, rowNumber, text, MaxPoints)
	}
	if order < 1 || order > MaxPoints {
		return 0, fmt.Errorf("%w %d in points sheet: order %d must be between 1 and %d",
			ErrRow, rowNumber, order, MaxPoints)
	}
	return order, nil
}

// duplicateOrders lists repeated order values in ascending order, joined
// for the error message. Empty when all orders are unique.
func duplicateOrders(points []Point) string {
	counts := make(map[int]int, len(points))
	for _, p := range points {
		counts[p.Order]++
	}
	var dupes []int
	for order, count := range counts {
		if count > 1 {
			dupes = append(dupes, order)
		}
	}
	sort.Ints(dupes)
	parts := make([]string, len(dupes))
	for i, order := range dupes {
		parts[i] = strconv.Itoa(order)
	}
	return strings.Join(parts, ", ")
}
