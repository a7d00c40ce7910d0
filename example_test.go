package macrobrief_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/globalite/go-macrobrief"
)

const examplePoints = `order,title,content,image_path,image_caption
1,Liquidity Rotation,Global liquidity expanded for the third straight month.,,
2,Supply Squeeze,Exchange balances fell to a five year low.,,`

// Example demonstrates rendering an issue from raw tab data.
// PDF export is off by default, so no browser is required.
func Example() {
	svc := macrobrief.New()
	defer svc.Close()

	result, err := svc.Render(context.Background(), macrobrief.Input{
		Points: examplePoints,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// Check that the issue document was assembled
	if strings.Contains(result.HTML, "Liquidity Rotation") {
		fmt.Println("HTML generated successfully")
	}
	fmt.Println("points:", result.Points)
	// Output:
	// HTML generated successfully
	// points: 2
}

// Example_withMetadata demonstrates overriding the built-in metadata.
// Any key left out of the meta tab keeps its default value.
func Example_withMetadata() {
	svc := macrobrief.New()
	defer svc.Close()

	meta := `key,value
main_title,QUARTERLY MACRO REVIEW
block_height,931000`

	result, err := svc.Render(context.Background(), macrobrief.Input{
		Meta:   meta,
		Points: examplePoints,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.Contains(result.HTML, "QUARTERLY MACRO REVIEW") {
		fmt.Println("Custom title applied")
	}
	// Output: Custom title applied
}

// Example_withImageBackend demonstrates addressing point images through
// a hosted storage backend instead of the local image directory.
func Example_withImageBackend() {
	svc := macrobrief.New()
	defer svc.Close()

	result, err := svc.Render(context.Background(), macrobrief.Input{
		Points: examplePoints,
		ImageBackend: &macrobrief.ImageBackend{
			Prefix:    "https://cdn.globalite.co/brief",
			Extension: "webp",
		},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.Contains(result.HTML, "https://cdn.globalite.co/brief/1.webp") {
		fmt.Println("Hosted images resolved")
	}
	// Output: Hosted images resolved
}

// Example_withPrice demonstrates the optional price tab. The latest
// bitcoin row becomes the price badge and is echoed in the result.
func Example_withPrice() {
	svc := macrobrief.New()
	defer svc.Close()

	price := `date,asset,close,currency
2026-01-04,bitcoin,66980.10,USD
2026-01-05,bitcoin,67250.50,USD`

	result, err := svc.Render(context.Background(), macrobrief.Input{
		Points: examplePoints,
		Price:  price,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("%s %.2f on %s\n", result.Price.Currency, result.Price.Price, result.Price.Date)
	// Output: USD 67250.50 on 2026-01-05
}

// Example_servicePool demonstrates batch rendering with a shared pool.
// Each worker acquires a service, renders, and releases it.
func Example_servicePool() {
	pool := macrobrief.NewServicePool(2)
	defer pool.Close()

	var wg sync.WaitGroup
	rendered := make([]int, 2)
	for i := range rendered {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			svc := pool.Acquire()
			defer pool.Release(svc)

			result, err := svc.Render(context.Background(), macrobrief.Input{
				Points: examplePoints,
			})
			if err != nil {
				return
			}
			rendered[n] = result.Points
		}(i)
	}
	wg.Wait()

	fmt.Println("issues rendered:", len(rendered))
	// Output: issues rendered: 2
}
