package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/beautyai/backend/internal/domain"
	"github.com/invopop/jsonschema"
)

const productSystemPrompt = `You are a product data service for a beauty shopping app.
You reply with a JSON array only. No prose, no markdown.`

// productItem documents the shape models are asked to return
type productItem struct {
	Name        string  `json:"name" jsonschema:"description=Full retail product name"`
	Brand       string  `json:"brand" jsonschema:"description=Brand or manufacturer"`
	Price       float64 `json:"price" jsonschema:"description=Typical retail price in US dollars,minimum=0"`
	Description string  `json:"description" jsonschema:"description=One sentence describing the product"`
	Country     string  `json:"country" jsonschema:"description=Country of origin of the brand"`
	Category    string  `json:"category" jsonschema:"description=Product category such as Skincare or Lip Products"`
}

type productList []productItem

var productSchema = sync.OnceValue(func() string {
	r := jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema := r.Reflect(&productList{})
	data, err := json.Marshal(schema)
	if err != nil {
		return `{"type":"array"}`
	}
	return string(data)
})

// buildProductPrompt asks for up to q.Limit real products matching the query
func buildProductPrompt(q domain.SourceQuery) string {
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	var b strings.Builder
	fmt.Fprintf(&b, "List %d real beauty products", limit)
	if query := strings.TrimSpace(q.Query); query != "" {
		fmt.Fprintf(&b, " matching %q", query)
	}
	if category := strings.TrimSpace(q.Category); category != "" {
		fmt.Fprintf(&b, " in the %q category", category)
	}
	b.WriteString(".\n")
	if shopper := strings.TrimSpace(q.Context); shopper != "" {
		fmt.Fprintf(&b, "Shopper context: %s\n", shopper)
	}
	b.WriteString("Return a JSON array that validates against this JSON Schema:\n")
	b.WriteString(productSchema())
	return b.String()
}
