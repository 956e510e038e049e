package domain

// Monetary values are integer cents, ratios are basis points, unless noted.

// OfferCondition is the condition of an offer.
type OfferCondition string

// Offer condition constants.
const (
	ConditionNew         OfferCondition = "New"
	ConditionUsed        OfferCondition = "Used"
	ConditionCollectible OfferCondition = "Collectible"
	ConditionRefurbished OfferCondition = "Refurbished"
	ConditionClub        OfferCondition = "Club"
)

// FulfillmentChannel is who fulfills an offer.
type FulfillmentChannel string

// Fulfillment channel constants.
const (
	FulfillmentAmazon   FulfillmentChannel = "Amazon"
	FulfillmentMerchant FulfillmentChannel = "Merchant"
)

// OfferCustomerType is the customer segment an offer targets.
type OfferCustomerType string

// Offer customer type constants.
const (
	CustomerB2C OfferCustomerType = "B2C"
	CustomerB2B OfferCustomerType = "B2B"
)

// QuantityDiscountType is the kind of quantity discount on an offer.
type QuantityDiscountType string

// QuantityDiscount is the only discount type the API reports.
const QuantityDiscount QuantityDiscountType = "QUANTITY_DISCOUNT"

// ImageVariant identifies an image slot.
type ImageVariant string

// Image variant constants.
const (
	ImageMain ImageVariant = "MAIN"
	ImagePT01 ImageVariant = "PT01"
	ImagePT02 ImageVariant = "PT02"
	ImagePT03 ImageVariant = "PT03"
	ImagePT04 ImageVariant = "PT04"
	ImagePT05 ImageVariant = "PT05"
	ImagePT06 ImageVariant = "PT06"
	ImagePT07 ImageVariant = "PT07"
	ImagePT08 ImageVariant = "PT08"
	ImageSWCH ImageVariant = "SWCH"
)

// ReturnRate buckets a product's return rate.
type ReturnRate int

// Return rate constants.
const (
	ReturnRateLow  ReturnRate = 1
	ReturnRateHigh ReturnRate = 2
)

// DimensionSet is a package or item dimension set.
type DimensionSet struct {
	Length     *float64 `json:"length,omitempty"`
	Width      *float64 `json:"width,omitempty"`
	Height     *float64 `json:"height,omitempty"`
	Weight     *float64 `json:"weight,omitempty"`
	LengthUnit string   `json:"length_unit,omitempty"`
	WidthUnit  string   `json:"width_unit,omitempty"`
	HeightUnit string   `json:"height_unit,omitempty"`
	WeightUnit string   `json:"weight_unit,omitempty"`
}

// Dimensions holds package and item dimensions.
type Dimensions struct {
	PackageDimensions *DimensionSet `json:"package_dimensions,omitempty"`
	ItemDimensions    *DimensionSet `json:"item_dimensions,omitempty"`
}

// AmazonFees is the Amazon fee breakdown.
type AmazonFees struct {
	PerItemFee          *int   `json:"per_item_fee,omitempty"`
	FBAFees             *int   `json:"fba_fees,omitempty"`
	VariableClosingFee  *int   `json:"variable_closing_fee,omitempty"`
	ReferralFee         *int   `json:"referral_fee,omitempty"`
	InboundPlacementFee *int   `json:"inbound_placement_fee,omitempty"`
	Error               string `json:"error,omitempty"`
}

// Money is an amount in cents with its currency.
type Money struct {
	CurrencyCode string `json:"currency_code"`
	Amount       int    `json:"amount"`
}

// Points is the Amazon points attached to an offer.
type Points struct {
	PointsNumber        *int   `json:"points_number,omitempty"`
	PointsMonetaryValue *Money `json:"points_monetary_value,omitempty"`
}

// OfferCount counts offers by condition and fulfillment channel.
type OfferCount struct {
	Condition          OfferCondition     `json:"condition,omitempty"`
	FulfillmentChannel FulfillmentChannel `json:"fulfillment_channel,omitempty"`
	OfferCount         *int               `json:"offer_count,omitempty"`
}

// LowestPriceInfo is the lowest price for a condition and channel.
type LowestPriceInfo struct {
	Condition            OfferCondition       `json:"condition"`
	FulfillmentChannel   FulfillmentChannel   `json:"fulfillment_channel"`
	OfferType            OfferCustomerType    `json:"offer_type,omitempty"`
	QuantityTier         *int                 `json:"quantity_tier,omitempty"`
	QuantityDiscountType QuantityDiscountType `json:"quantity_discount_type,omitempty"`
	LandedPrice          int                  `json:"landed_price"`
	ListingPrice         int                  `json:"listing_price"`
	Shipping             int                  `json:"shipping"`
	Points               *Points              `json:"points,omitempty"`
}

// BuyBoxPriceInfo is the buy box price for a condition.
type BuyBoxPriceInfo struct {
	Condition            OfferCondition       `json:"condition"`
	OfferType            OfferCustomerType    `json:"offer_type,omitempty"`
	QuantityTier         *int                 `json:"quantity_tier,omitempty"`
	QuantityDiscountType QuantityDiscountType `json:"quantity_discount_type,omitempty"`
	LandedPrice          int                  `json:"landed_price"`
	ListingPrice         int                  `json:"listing_price"`
	Shipping             int                  `json:"shipping"`
	Points               *Points              `json:"points,omitempty"`
	SellerID             string               `json:"seller_id,omitempty"`
}

// Offers summarizes the offers on a product.
type Offers struct {
	TotalOffersCount     *int              `json:"total_offers_count,omitempty"`
	ListPrice            *int              `json:"list_price,omitempty"`
	BuyboxEligibleOffers []OfferCount      `json:"buybox_eligible_offers,omitempty"`
	NumberOfOffers       []OfferCount      `json:"number_of_offers,omitempty"`
	LowestPrices         []LowestPriceInfo `json:"lowest_prices,omitempty"`
	BuyBoxPrices         []BuyBoxPriceInfo `json:"buy_box_prices,omitempty"`
}

// Inputs is the supplier row a product was looked up from.
type Inputs struct {
	Identifier           string   `json:"identifier,omitempty"`
	IdentifierOverride   string   `json:"identifier_override,omitempty"`
	Cost                 *int     `json:"cost,omitempty"`
	Stock                *int     `json:"stock,omitempty"`
	MAP                  *int     `json:"map,omitempty"`
	SupplierTitle        string   `json:"supplier_title,omitempty"`
	SupplierSKU          string   `json:"supplier_sku,omitempty"`
	SupplierImage        string   `json:"supplier_image,omitempty"`
	SupplierPackQuantity int      `json:"supplier_pack_quantity"`
	DiscountPerProduct   *int     `json:"discount_per_product,omitempty"`
	DiscountSupplier     *int     `json:"discount_supplier,omitempty"`
	DiscountCost         *int     `json:"discount_cost,omitempty"`
	TotalCOGS            *int     `json:"total_cogs,omitempty"`
	CustomColumns        []string `json:"custom_columns,omitempty"`
	SourceLink           string   `json:"source_link,omitempty"`
}

// SalesRank is a product's rank within one category.
type SalesRank struct {
	Rank     int    `json:"rank"`
	Title    string `json:"title,omitempty"`
	RawTitle string `json:"raw_title"`
}

// Image is a single product image.
type Image struct {
	Height  int          `json:"height"`
	Width   int          `json:"width"`
	Link    string       `json:"link"`
	Variant ImageVariant `json:"variant"`
}

// ImageByMarketplace groups images by marketplace.
type ImageByMarketplace struct {
	MarketplaceID string  `json:"marketplace_id"`
	Image         []Image `json:"image"`
}

// RestrictionLink points at documentation for a listing restriction.
type RestrictionLink struct {
	Resource string `json:"resource"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Verb     string `json:"verb"`
}

// ListingRestrictionReason explains one listing restriction.
type ListingRestrictionReason struct {
	Message    string            `json:"message"`
	ReasonCode string            `json:"reason_code"`
	Links      []RestrictionLink `json:"links,omitempty"`
}

// ListingRestriction is a restriction on listing a product.
type ListingRestriction struct {
	ConditionType string                     `json:"condition_type"`
	MarketplaceID string                     `json:"marketplace_id"`
	Reasons       []ListingRestrictionReason `json:"reasons"`
}

// DateValues holds 30/60/90/180 day values; -1 marks unavailable data.
type DateValues struct {
	D30  float64 `json:"d30"`
	D60  float64 `json:"d60"`
	D90  float64 `json:"d90"`
	D180 float64 `json:"d180"`
}

// HistoricalResult is historical pricing and performance data.
type HistoricalResult struct {
	BSR                       DateValues  `json:"bsr"`
	Price                     DateValues  `json:"price"`
	AmazonInStockRate         DateValues  `json:"amazon_in_stock_rate"`
	SalesRankDrops            DateValues  `json:"sales_rank_drops"`
	MonthlySold               *int        `json:"monthly_sold,omitempty"`
	DeltaPercent90MonthlySold *float64    `json:"delta_percent_90_monthly_sold,omitempty"`
	ReturnRate                *ReturnRate `json:"return_rate,omitempty"`
}

// Financials is the computed financial picture for a product.
type Financials struct {
	InboundShipping *int `json:"inbound_shipping,omitempty"`
	PrepCost        *int `json:"prep_cost,omitempty"`
	FBAStorageFees  *int `json:"fba_storage_fees,omitempty"`
	NetRevenue      *int `json:"net_revenue,omitempty"`
	Profit          *int `json:"profit,omitempty"`
	Margin          *int `json:"margin,omitempty"`
	ROI             *int `json:"roi,omitempty"`
}

// Product is one enriched product row of a scan.
type Product struct {
	ID                           int                  `json:"id"`
	Flags                        []string             `json:"flags,omitempty"`
	Identifiers                  *Identifiers         `json:"identifiers,omitempty"`
	Errors                       []string             `json:"errors,omitempty"`
	Inputs                       Inputs               `json:"inputs"`
	ASIN                         string               `json:"asin,omitempty"`
	Offers                       Offers               `json:"offers"`
	Images                       []ImageByMarketplace `json:"images,omitempty"`
	AmazonTitle                  string               `json:"amazon_title,omitempty"`
	IsTopLevelCategory           *bool                `json:"is_top_level_category,omitempty"`
	CategoryRaw                  string               `json:"category_raw,omitempty"`
	Category                     string               `json:"category,omitempty"`
	Rank                         *int                 `json:"rank,omitempty"`
	BuyboxPrice                  *int                 `json:"buybox_price,omitempty"`
	AmazonPackQuantity           int                  `json:"amazon_pack_quantity"`
	NumberOfVariations           *int                 `json:"number_of_variations,omitempty"`
	VariationsList               []string             `json:"variations_list,omitempty"`
	ParentASIN                   string               `json:"parent_asin,omitempty"`
	ParentASINs                  []string             `json:"parent_asins,omitempty"`
	SalesRanks                   []SalesRank          `json:"sales_ranks,omitempty"`
	Dimensions                   Dimensions           `json:"dimensions"`
	AmazonFees                   AmazonFees           `json:"amazon_fees"`
	CompetitiveSellers           *int                 `json:"competitive_sellers,omitempty"`
	Brand                        string               `json:"brand,omitempty"`
	Color                        string               `json:"color,omitempty"`
	SizeName                     string               `json:"size_name,omitempty"`
	ListingRestrictions          []ListingRestriction `json:"listing_restrictions,omitempty"`
	Financials                   Financials           `json:"financials"`
	SizeTier                     string               `json:"size_tier,omitempty"`
	LowestPriceNewFBA            *int                 `json:"lowest_price_new_fba,omitempty"`
	LowestPriceUsedFBA           *int                 `json:"lowest_price_used_fba,omitempty"`
	LowestPriceNewFBM            *int                 `json:"lowest_price_new_fbm,omitempty"`
	LowestPriceUsedFBM           *int                 `json:"lowest_price_used_fbm,omitempty"`
	BuyboxPriceNew               *int                 `json:"buybox_price_new,omitempty"`
	BuyboxPriceUsed              *int                 `json:"buybox_price_used,omitempty"`
	TotalOffersCount             *int                 `json:"total_offers_count,omitempty"`
	IsBrandBlocklisted           bool                 `json:"is_brand_blocklisted"`
	NewFBAOffersCount            *int                 `json:"new_fba_offers_count,omitempty"`
	NewFBMOffersCount            *int                 `json:"new_fbm_offers_count,omitempty"`
	IsAdult                      bool                 `json:"is_adult"`
	IsHazmat                     bool                 `json:"is_hazmat"`
	IsMeltable                   bool                 `json:"is_meltable"`
	SmallAndLightEligible        bool                 `json:"small_and_light_eligible"`
	SmallAndLightEligibleReasons map[string]bool      `json:"small_and_light_eligible_reasons"`
	InboundEligibility           map[string]any       `json:"inbound_eligibility,omitempty"`
	Note                         string               `json:"note,omitempty"`
	BSRPercentage                *int                 `json:"bsr_percentage,omitempty"`
	MarketplaceID                *int                 `json:"marketplace_id,omitempty"`
	UnitsPerMonth                *int                 `json:"units_per_month,omitempty"`
	SalesPerMonth                *int                 `json:"sales_per_month,omitempty"`
	ProfitPerMonth               *int                 `json:"profit_per_month,omitempty"`
	BulletPoints                 []string             `json:"bullet_points,omitempty"`
	HasExpiration                *bool                `json:"has_expiration,omitempty"`
	HasProp65                    *bool                `json:"has_prop_65,omitempty"`
	Material                     string               `json:"material,omitempty"`
	Historical                   *HistoricalResult    `json:"historical,omitempty"`
	ReleaseDate                  string               `json:"release_date,omitempty"`
	Favorited                    bool                 `json:"favorited"`
	TagIDs                       []int                `json:"tag_ids,omitempty"`
	ListingMatch                 *bool                `json:"listing_match,omitempty"`
	PartNumber                   string               `json:"part_number,omitempty"`
	ModelNumber                  string               `json:"model_number,omitempty"`
	Marketplace                  *int                 `json:"marketplace,omitempty"` // numeric ID, legacy
}
