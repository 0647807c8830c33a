package amazon

import (
	"testing"

	"github.com/listcraft/listing-studio/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const factsExpanderHTML = `
<div id="productFactsDesktopExpander">
	<h3 class="product-facts-title">Product details</h3>
	<div class="product-facts-detail">
		<span class="a-color-base">Material</span>
		<span class="a-color-base">Cotton</span>
	</div>
	<div class="product-facts-detail">
		<span class="a-color-base">Fit Type</span>
		<span class="a-color-base">Regular</span>
	</div>
	<hr/>
	<h3 class="product-facts-title">Additional Information</h3>
	<div class="product-facts-detail">
		<span class="a-color-base">Care Instructions</span>
		<span class="a-color-base">Machine Wash</span>
	</div>
	<h3 class="product-facts-title">Unrelated Section</h3>
	<div class="product-facts-detail">
		<span class="a-color-base">Ignored</span>
		<span class="a-color-base">Row</span>
	</div>
</div>`

func TestExtractProductFacts(t *testing.T) {
	details, additional := extractProductFacts(mustDoc(t, factsExpanderHTML))

	material, ok := details.Get("Material")
	assert.True(t, ok)
	assert.Equal(t, "Cotton", material)

	fit, ok := details.Get("Fit Type")
	assert.True(t, ok)
	assert.Equal(t, "Regular", fit)

	care, ok := additional.Get("Care Instructions")
	assert.True(t, ok)
	assert.Equal(t, "Machine Wash", care)

	assert.False(t, details.Has("Ignored"))
	assert.False(t, additional.Has("Ignored"))
}

func TestExtractProductFactsStopsAtDivider(t *testing.T) {
	html := `
<div id="productFactsDesktopExpander">
	<h3 class="product-facts-title">Product details</h3>
	<div class="product-facts-detail">
		<span class="a-color-base">Material</span>
		<span class="a-color-base">Silk</span>
	</div>
	<hr/>
	<div class="product-facts-detail">
		<span class="a-color-base">After Divider</span>
		<span class="a-color-base">Skipped</span>
	</div>
</div>`

	details, _ := extractProductFacts(mustDoc(t, html))
	assert.True(t, details.Has("Material"))
	assert.False(t, details.Has("After Divider"))
}

func TestExtractDetailBulletsWrapperFallback(t *testing.T) {
	html := `
<div id="detailBulletsWrapper_feature_div">
	<ul>
		<li><div class="a-list-item"><span class="a-text-bold">Colour :</span> Navy Blue</div></li>
		<li><div class="a-list-item"><span class="a-text-bold">Pattern :</span> Solid</div></li>
	</ul>
</div>`

	fields := extractDetailBullets(mustDoc(t, html))
	colour, ok := fields.Get("Colour")
	assert.True(t, ok)
	assert.Equal(t, "Navy Blue", colour)
	assert.True(t, fields.Has("Pattern"))
}

func TestExtractTechSpecs(t *testing.T) {
	html := `
<table id="productDetails_techSpec_section_1">
	<tr><th>Manufacturer</th><td>Arvind Fashions</td></tr>
	<tr><th>Item Weight</th><td>300 g</td></tr>
</table>`

	fields := extractTechSpecs(mustDoc(t, html))
	manufacturer, ok := fields.Get("Manufacturer")
	assert.True(t, ok)
	assert.Equal(t, "Arvind Fashions", manufacturer)
	assert.True(t, fields.Has("Item Weight"))
}

func TestExtractManufacturingMergeOrder(t *testing.T) {
	// The detail bullets and tech spec table disagree; the bullets are
	// read first, so their value wins.
	html := `
<div id="detailBullets_feature_div">
	<ul>
		<li><span class="a-text-bold">Manufacturer :</span> Bullet Corp</li>
		<li><span class="a-text-bold">Packe r :</span> Pack Co</li>
	</ul>
</div>
<table id="productDetails_techSpec_section_1">
	<tr><th>Manufacturer</th><td>Spec Corp</td></tr>
	<tr><th>Importer</th><td>Import Co</td></tr>
</table>`

	fields := extractManufacturing(mustDoc(t, html), "B0SEEDASIN")

	require.True(t, fields.Len() >= 4)
	assert.Equal(t, "ASIN", fields[0].Label)

	manufacturer, _ := fields.Get("Manufacturer")
	assert.Equal(t, "Bullet Corp", manufacturer)

	packer, _ := fields.Get("Packer")
	assert.Equal(t, "Pack Co", packer)

	importer, _ := fields.Get("Importer")
	assert.Equal(t, "Import Co", importer)
}

func TestExtractManufacturingUnknownASINNotSeeded(t *testing.T) {
	fields := extractManufacturing(mustDoc(t, `<div></div>`), "unknown")
	assert.False(t, fields.Has("ASIN"))
	assert.Zero(t, fields.Len())
}

func TestAssembleDetailsExclusivity(t *testing.T) {
	html := factsExpanderHTML + `
<div id="detailBullets_feature_div">
	<ul>
		<li><span class="a-text-bold">Material :</span> Polyester</li>
		<li><span class="a-text-bold">Manufacturer :</span> Arvind Fashions</li>
		<li><span class="a-text-bold">Best Sellers Rank :</span> #12 in Shirts</li>
		<li><span class="a-text-bold">ASIN :</span> B0IGNOREDX</li>
	</ul>
</div>`

	product := &models.Product{ASIN: "B0TEST1234"}
	assembleDetails(mustDoc(t, html), product)

	// Facts expander row wins over the bullet duplicate.
	material, _ := product.ProductDetails.Get("Material")
	assert.Equal(t, "Cotton", material)

	// Denylisted labels never reach the general sections.
	assert.False(t, product.ProductDetails.Has("Best Sellers Rank"))
	assert.False(t, product.ProductDetails.Has("Manufacturer"))
	assert.False(t, product.ProductDetails.Has("ASIN"))
	assert.False(t, product.AdditionalInfo.Has("Manufacturer"))

	// Manufacturing section holds the routed labels plus the seeded ASIN.
	asin, _ := product.ManufacturingDetails.Get("ASIN")
	assert.Equal(t, "B0TEST1234", asin)
	assert.True(t, product.ManufacturingDetails.Has("Manufacturer"))

	// A label in additionalInfo is not duplicated into productDetails
	// and vice versa.
	assert.True(t, product.AdditionalInfo.Has("Care Instructions"))
	assert.False(t, product.ProductDetails.Has("Care Instructions"))
}

func TestAssembleDetailsSentinels(t *testing.T) {
	product := &models.Product{ASIN: "unknown"}
	assembleDetails(mustDoc(t, `<div>empty page</div>`), product)

	status, ok := product.ProductDetails.Get("status")
	assert.True(t, ok)
	assert.Equal(t, models.NoDataStatus, status)

	status, ok = product.ManufacturingDetails.Get("status")
	assert.True(t, ok)
	assert.Equal(t, models.NoDataStatus, status)

	// The manufacturing placeholder still carries the ASIN, even the
	// sentinel one.
	asin, ok := product.ManufacturingDetails.Get("ASIN")
	assert.True(t, ok)
	assert.Equal(t, "unknown", asin)

	assert.Zero(t, product.AdditionalInfo.Len())
}

func TestExtractBullets(t *testing.T) {
	html := `
<div id="feature-bullets">
	<ul>
		<li><span class="a-list-item">Breathable   fabric</span></li>
		<li><span class="a-list-item">Slim fit</span></li>
		<li><span class="a-list-item">   </span></li>
	</ul>
</div>`

	bullets := extractBullets(mustDoc(t, html))
	assert.Equal(t, []string{"Breathable fabric", "Slim fit"}, bullets)
}

func TestExtractBulletsSkipsHeading(t *testing.T) {
	// Some layouts render the section heading as the first list item.
	html := `
<div id="feature-bullets">
	<ul>
		<li><span class="a-list-item">About this item</span></li>
		<li><span class="a-list-item">Breathable fabric</span></li>
	</ul>
</div>`

	bullets := extractBullets(mustDoc(t, html))
	assert.Equal(t, []string{"Breathable fabric"}, bullets)
}

func TestExtractBulletsEmpty(t *testing.T) {
	assert.Equal(t, []string{"N/A"}, extractBullets(mustDoc(t, `<div></div>`)))
}
