package catalog

import "polynomial-residence/internal/residence/models"

// ============================================================
// Default feed
// ============================================================

// DefaultHouse is the whole-house data of The Polynomial Residence.
func DefaultHouse() models.House {
	return models.House{
		Name:                   "The Polynomial Residence",
		WidthPolynomial:        "16x - 2",
		HeightPolynomial:       "8x² + 3x + 4",
		AreaPolynomial:         "128x³ + 32x² + 58x - 8",
		PerimeterPolynomial:    "16x² + 38x + 4",
		HallwayWidthPolynomial: "3x - 1",
		CheckValue:             2,
		EstimateDate:           "November 23, 2025",
	}
}

// DefaultRooms is the room feed in display order.
func DefaultRooms() []models.RoomSpec {
	livingRoomInstall := 250.00

	return []models.RoomSpec{
		{
			ID:                  "master-bedroom",
			Name:                "Master Bedroom",
			Wing:                models.WingPrivate,
			Dimensions:          "7x by (5x + 4)",
			AreaPolynomial:      "35x² + 28x",
			PerimeterPolynomial: "24x + 8",
			Verification:        "14ft x 14ft = 196 sq ft",
			Description:         "The master bedroom is a spacious retreat designed for comfort and relaxation. With ample room for a king-size bed, nightstands, and a seating area, this room serves as the primary sleeping quarters for the residence.",
			Features: []string{
				"King-size bed accommodation",
				"Large windows for natural lighting",
				"Space for dresser and wardrobe",
				"Adjacent master bathroom access",
				"Carpet flooring included in cost analysis",
				"Crown molding ready",
				"Closet space planning",
				"Optimal room temperature control",
			},
			CostBreakdown: &models.CostBreakdown{
				Carpet: &models.CarpetCost{Area: 196, Rate: 2.49, Total: 488.04},
				Total:  488.04,
			},
		},
		{
			ID:                  "master-bathroom",
			Name:                "Master Bathroom",
			Wing:                models.WingPrivate,
			Dimensions:          "(9x - 4) by (3x + 3)",
			AreaPolynomial:      "27x² + 15x - 12",
			PerimeterPolynomial: "24x - 2",
			Verification:        "14ft x 9ft = 126 sq ft",
			Description:         "An ensuite bathroom designed exclusively for the master bedroom. This private bath features modern fixtures and enough space for a double vanity, separate shower, and tub area.",
			Features: []string{
				"Double vanity sink",
				"Separate shower enclosure",
				"Bathtub installation area",
				"Linen closet storage",
				"Tile flooring (not included in current cost)",
				"Exhaust ventilation system",
				"Privacy from main living areas",
				"Modern plumbing fixtures",
			},
		},
		{
			ID:                  "bathroom",
			Name:                "Bathroom",
			Wing:                models.WingPrivate,
			Dimensions:          "(4x + 2) by (2x + 1)",
			AreaPolynomial:      "8x² + 8x + 2",
			PerimeterPolynomial: "12x + 6",
			Verification:        "10ft x 5ft = 50 sq ft",
			Description:         "A compact guest bathroom centrally located for convenient access from common areas and the second bedroom. This efficient design maximizes functionality in a smaller footprint.",
			Features: []string{
				"Single vanity sink",
				"Shower/tub combo",
				"Space-efficient design",
				"Guest accessible",
				"Medicine cabinet storage",
				"Tile flooring recommended",
				"Proper ventilation",
				"Standard toilet placement",
			},
		},
		{
			ID:                  "bedroom-2",
			Name:                "Bedroom 2",
			Wing:                models.WingPrivate,
			Dimensions:          "(8x - 2) by (6x + 2)",
			AreaPolynomial:      "48x² + 4x - 4",
			PerimeterPolynomial: "28x",
			Verification:        "14ft x 14ft = 196 sq ft",
			Description:         "The second bedroom offers generous space ideal for children, guests, or a home office. With the same square footage as the master bedroom, this versatile room provides flexibility for various household needs.",
			Features: []string{
				"Queen or full-size bed space",
				"Large closet capacity",
				"Desk area for home office use",
				"Natural window lighting",
				"Adjacent to guest bathroom",
				"Carpet or hardwood options",
				"Sufficient storage space",
				"Multi-purpose room potential",
			},
		},
		{
			ID:                  "kitchen",
			Name:                "Kitchen",
			Wing:                models.WingCommon,
			Dimensions:          "(2x² + 2x - 1) by (3x + 8)",
			AreaPolynomial:      "6x³ + 22x² + 13x - 8",
			PerimeterPolynomial: "4x² + 10x + 14",
			Verification:        "11ft x 14ft = 154 sq ft",
			Description:         "The heart of the home, this kitchen provides ample workspace for meal preparation and cooking. The layout accommodates modern appliances and offers counter space for food prep and casual dining.",
			Features: []string{
				"Full-size refrigerator space",
				"Range and oven installation",
				"Dishwasher placement",
				"Upper and lower cabinetry",
				"Countertop workspace",
				"Pantry storage options",
				"Proper lighting fixtures",
				"Tile or vinyl flooring",
				"Backsplash area",
				"Electrical outlets for appliances",
			},
		},
		{
			ID:                  "dining-room",
			Name:                "Dining Room",
			Wing:                models.WingCommon,
			Dimensions:          "(3x² + 2x - 5) by 6x",
			AreaPolynomial:      "18x³ + 12x² - 30x",
			PerimeterPolynomial: "6x² + 16x - 10",
			Verification:        "11ft x 12ft = 132 sq ft",
			Description:         "A dedicated dining space perfect for family meals and entertaining guests. This room connects the kitchen to the living areas, creating a natural flow for gatherings and daily dining.",
			Features: []string{
				"Table seating for 6-8 people",
				"China cabinet or buffet space",
				"Chandelier/lighting fixture ready",
				"Open flow to kitchen",
				"Hardwood or carpet flooring",
				"Window with natural light",
				"Wall space for artwork",
				"Formal dining capability",
			},
		},
		{
			ID:                  "living-room",
			Name:                "Living Room",
			Wing:                models.WingCommon,
			Dimensions:          "(4x + 3) by (2x² + 3x + 2)",
			AreaPolynomial:      "8x³ + 18x² + 17x + 6",
			PerimeterPolynomial: "4x² + 14x + 10",
			Verification:        "11ft x 16ft = 176 sq ft",
			Description:         "The primary gathering space for family activities and entertainment. This generous living room provides comfortable seating areas and space for media equipment, making it perfect for relaxation and socializing.",
			Features: []string{
				"Entertainment center area",
				"Sofa and seating arrangement",
				"Coffee table space",
				"Large window views",
				"Crown molding included",
				"Carpet flooring installed",
				"Electrical outlets strategically placed",
				"Bookshelf or display areas",
				"Ambient lighting options",
				"Open concept connection to dining",
			},
			CostBreakdown: &models.CostBreakdown{
				Carpet:       &models.CarpetCost{Area: 176, Rate: 2.49, Total: 438.24},
				Molding:      &models.MoldingCost{Perimeter: 54, Rate: 5.49, Total: 296.46},
				Installation: &livingRoomInstall,
				Total:        984.70,
			},
		},
	}
}

// Default builds the catalog from the built-in feed. The feed is fixed
// data, so a failure here is a programming error.
func Default() *Catalog {
	c, err := New(DefaultHouse(), DefaultRooms())
	if err != nil {
		panic("catalog: default feed: " + err.Error())
	}
	return c
}
