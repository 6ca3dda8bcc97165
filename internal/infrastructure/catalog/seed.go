package catalog

import "github.com/beautyai/backend/internal/domain"

// seedProducts is the curated part of the local catalog
var seedProducts = []domain.Product{
	// Tanning
	{Name: "Bondi Sands Self Tanning Foam", Brand: "Bondi Sands", Price: 24.00, Country: "Australia", Category: "Tanning", Description: "Long-lasting self-tanner for a natural, streak-free glow."},
	{Name: "St. Tropez Self Tan Classic Bronzing Mousse", Brand: "St. Tropez", Price: 35.00, Country: "UK", Category: "Tanning", Description: "Lightweight mousse for a golden tan."},
	{Name: "Tan-Luxe The Face Illuminating Drops", Brand: "Tan-Luxe", Price: 49.00, Country: "UK", Category: "Tanning", Description: "Customizable tanning drops for radiant skin."},
	{Name: "Isle of Paradise Self Tanning Water", Brand: "Isle of Paradise", Price: 28.00, Country: "USA", Category: "Tanning", Description: "Hydrating tanning water with color-correcting actives."},
	{Name: "Vita Liberata Fabulous Self Tanning Mist", Brand: "Vita Liberata", Price: 30.00, Country: "Ireland", Category: "Tanning", Description: "Quick-drying mist for an even tan."},
	{Name: "Bondi Sands Everyday Gradual Tanning Milk", Brand: "Bondi Sands", Price: 20.00, Country: "Australia", Category: "Tanning", Description: "Moisturizing gradual tanner for daily use."},
	{Name: "Jergens Natural Glow Daily Moisturizer", Brand: "Jergens", Price: 15.00, Country: "USA", Category: "Tanning", Description: "Buildable tan with hydrating formula."},

	// Eyelashes
	{Name: "Ardell Natural Lash Set", Brand: "Ardell", Price: 6.99, Country: "USA", Category: "Eyelashes", Description: "Lightweight false eyelashes for daily wear."},
	{Name: "Velour Lashes Effortless", Brand: "Velour", Price: 25.00, Country: "USA", Category: "Eyelashes", Description: "Premium mink lashes for dramatic effect."},
	{Name: "Huda Beauty Classic Lashes", Brand: "Huda Beauty", Price: 20.00, Country: "UAE", Category: "Eyelashes", Description: "Bold lashes for glamorous looks."},
	{Name: "Lilly Lashes Miami", Brand: "Lilly Lashes", Price: 22.00, Country: "USA", Category: "Eyelashes", Description: "Voluminous lashes for a night-out vibe."},
	{Name: "Eylure Luxe Silk Marquise", Brand: "Eylure", Price: 12.00, Country: "UK", Category: "Eyelashes", Description: "Silky lashes with a natural finish."},
	{Name: "Kiss Falscara Wispy Lashes", Brand: "Kiss", Price: 8.99, Country: "USA", Category: "Eyelashes", Description: "Easy-to-apply wispy lashes for a soft look."},
	{Name: "Tarte Tarteist Pro Lashes", Brand: "Tarte", Price: 15.00, Country: "USA", Category: "Eyelashes", Description: "Cruelty-free lashes with bold volume."},
	{Name: "L'Oréal Voluminous Lash Paradise Mascara", Brand: "L'Oréal", Price: 12.99, Country: "France", Category: "Eyelashes", Description: "Volumizing mascara for bold lashes."},

	// Lip Products
	{Name: "MAC Retro Matte Lipstick", Brand: "MAC", Price: 20.00, Country: "USA", Category: "Lip Products", Description: "Vibrant, long-lasting matte lip color."},
	{Name: "Dior Addict Lip Gloss", Brand: "Dior", Price: 38.00, Country: "France", Category: "Lip Products", Description: "High-shine gloss with hydrating formula."},
	{Name: "Fenty Beauty Gloss Bomb", Brand: "Fenty Beauty", Price: 20.00, Country: "USA", Category: "Lip Products", Description: "Universal lip luminizer for all skin tones."},
	{Name: "Chanel Rouge Coco", Brand: "Chanel", Price: 40.00, Country: "France", Category: "Lip Products", Description: "Hydrating lipstick with a satin finish."},
	{Name: "NARS Powermatte Lip Pigment", Brand: "NARS", Price: 26.00, Country: "USA", Category: "Lip Products", Description: "Intense matte color with long wear."},
	{Name: "YSL Vinyl Cream Lip Stain", Brand: "Yves Saint Laurent", Price: 37.00, Country: "France", Category: "Lip Products", Description: "High-impact color with a glossy finish."},
	{Name: "Maybelline SuperStay Matte Ink", Brand: "Maybelline", Price: 9.99, Country: "USA", Category: "Lip Products", Description: "Long-lasting liquid lipstick."},

	// Eye Care
	{Name: "Neutrogena Hydro Boost Eye Gel-Cream", Brand: "Neutrogena", Price: 18.99, Country: "USA", Category: "Eye Care", Description: "Hydrating gel-cream for under-eye moisture."},
	{Name: "Clinique All About Eyes", Brand: "Clinique", Price: 35.00, Country: "USA", Category: "Eye Care", Description: "Reduces puffiness and dark circles."},
	{Name: "La Roche-Posay Toleriane Ultra Eye Cream", Brand: "La Roche-Posay", Price: 29.99, Country: "France", Category: "Eye Care", Description: "Soothing cream for sensitive eyes."},
	{Name: "Kiehl’s Creamy Eye Treatment with Avocado", Brand: "Kiehl’s", Price: 50.00, Country: "USA", Category: "Eye Care", Description: "Nourishing eye cream with avocado oil."},
	{Name: "Estée Lauder Advanced Night Repair Eye", Brand: "Estée Lauder", Price: 58.00, Country: "USA", Category: "Eye Care", Description: "Anti-aging eye serum for radiance."},
	{Name: "Shiseido Benefiance Wrinkle Smoothing Eye Cream", Brand: "Shiseido", Price: 45.00, Country: "Japan", Category: "Eye Care", Description: "Targets wrinkles and hydrates."},
	{Name: "CeraVe Eye Repair Cream", Brand: "CeraVe", Price: 14.99, Country: "USA", Category: "Eye Care", Description: "Repairs skin barrier around eyes."},
	{Name: "The Ordinary Caffeine Solution 5%", Brand: "The Ordinary", Price: 7.99, Country: "Canada", Category: "Eye Care", Description: "Reduces dark circles and puffiness."},
	{Name: "Laneige Eye Sleeping Mask", Brand: "Laneige", Price: 32.00, Country: "South Korea", Category: "Eye Care", Description: "Overnight mask for refreshed eyes."},
	{Name: "Olay Eyes Ultimate Eye Cream", Brand: "Olay", Price: 24.99, Country: "USA", Category: "Eye Care", Description: "Brightens and smooths eye area."},

	// Makeup
	{Name: "NARS Radiant Creamy Concealer", Brand: "NARS", Price: 30.00, Country: "USA", Category: "Makeup", Description: "Creamy concealer for flawless coverage."},
	{Name: "Fenty Beauty Pro Filt'r Foundation", Brand: "Fenty Beauty", Price: 38.00, Country: "USA", Category: "Makeup", Description: "Long-wear foundation with a matte finish."},
	{Name: "Huda Beauty Desert Dusk Eyeshadow Palette", Brand: "Huda Beauty", Price: 65.00, Country: "UAE", Category: "Makeup", Description: "Vibrant eyeshadow palette for bold looks."},

	// Skincare
	{Name: "CeraVe Hydrating Facial Cleanser", Brand: "CeraVe", Price: 14.99, Country: "USA", Category: "Skincare", Description: "Gentle cleanser for normal to dry skin."},
	{Name: "The Ordinary Niacinamide 10% + Zinc 1%", Brand: "The Ordinary", Price: 6.99, Country: "Canada", Category: "Skincare", Description: "Reduces blemishes and balances oil."},
	{Name: "La Roche-Posay Effaclar Duo", Brand: "La Roche-Posay", Price: 29.99, Country: "France", Category: "Skincare", Description: "Targets acne and clogged pores."},
	{Name: "Shiseido Ultimune Power Infusing Concentrate", Brand: "Shiseido", Price: 98.00, Country: "Japan", Category: "Skincare", Description: "Boosts skin's natural defenses."},
	{Name: "Laneige Water Sleeping Mask", Brand: "Laneige", Price: 25.00, Country: "South Korea", Category: "Skincare", Description: "Overnight mask for hydrated skin."},

	// K-Beauty
	{Name: "COSRX Advanced Snail 96 Mucin Power Essence", Brand: "COSRX", Price: 25.00, Country: "South Korea", Category: "K-Beauty", Description: "Lightweight essence that soothes and hydrates."},
	{Name: "Beauty of Joseon Relief Sun Rice + Probiotics SPF50", Brand: "Beauty of Joseon", Price: 18.00, Country: "South Korea", Category: "K-Beauty", Description: "Weightless daily sunscreen with a dewy finish."},
	{Name: "Sulwhasoo First Care Activating Serum", Brand: "Sulwhasoo", Price: 89.00, Country: "South Korea", Category: "K-Beauty", Description: "Herbal serum that preps skin for the rest of the routine."},

	// Anti-Aging
	{Name: "Olay Regenerist Micro-Sculpting Cream", Brand: "Olay", Price: 29.99, Country: "USA", Category: "Anti-Aging", Description: "Peptide moisturizer that firms and plumps."},
	{Name: "RoC Retinol Correxion Line Smoothing Night Serum", Brand: "RoC", Price: 32.99, Country: "France", Category: "Anti-Aging", Description: "Retinol serum that softens fine lines."},
	{Name: "Estée Lauder Advanced Night Repair Serum", Brand: "Estée Lauder", Price: 80.00, Country: "USA", Category: "Anti-Aging", Description: "Overnight repair serum for smoother, younger-looking skin."},

	// Haircare
	{Name: "Moroccanoil Treatment", Brand: "Moroccanoil", Price: 34.00, Country: "Israel", Category: "Haircare", Description: "Nourishing oil for shiny hair."},
	{Name: "Olaplex No.3 Hair Perfector", Brand: "Olaplex", Price: 28.00, Country: "USA", Category: "Haircare", Description: "Repairs damaged hair bonds."},
	{Name: "Kérastase Elixir Ultime Oil", Brand: "Kérastase", Price: 45.00, Country: "France", Category: "Haircare", Description: "Luxurious oil for smooth hair."},
	{Name: "Aveda Damage Remedy Shampoo", Brand: "Aveda", Price: 29.00, Country: "USA", Category: "Haircare", Description: "Gentle shampoo for damaged hair."},
	{Name: "Briogeo Don’t Despair, Repair! Mask", Brand: "Briogeo", Price: 36.00, Country: "USA", Category: "Haircare", Description: "Deep conditioning for dry hair."},

	// Clean Beauty, Luxury Skincare, Fragrances
	{Name: "Drunk Elephant C-Firma Day Serum", Brand: "Drunk Elephant", Price: 80.00, Country: "USA", Category: "Clean Beauty", Description: "Vitamin C serum for brightening."},
	{Name: "Herbivore Lapis Blue Tansy Face Oil", Brand: "Herbivore", Price: 72.00, Country: "USA", Category: "Clean Beauty", Description: "Calming face oil for sensitive skin."},
	{Name: "La Mer Crème de la Mer", Brand: "La Mer", Price: 190.00, Country: "USA", Category: "Luxury Skincare", Description: "Luxurious moisturizer for radiant skin."},
	{Name: "Tatcha The Dewy Skin Cream", Brand: "Tatcha", Price: 68.00, Country: "Japan", Category: "Luxury Skincare", Description: "Hydrating cream for a dewy glow."},
	{Name: "Jo Malone Peony & Blush Suede Cologne", Brand: "Jo Malone", Price: 75.00, Country: "UK", Category: "Fragrances", Description: "Floral fragrance with a fruity twist."},
}
