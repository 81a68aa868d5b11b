package export

import (
	"fmt"
	"strings"
)

var starAmenities = map[int][]string{
	5: {"Luxury spa and wellness center", "Infinity pool with ocean view", "Fine dining restaurant", "24/7 concierge service", "Premium room service", "Fitness center", "Business center", "Valet parking"},
	4: {"Swimming pool", "Restaurant and bar", "Fitness center", "Room service", "Free Wi-Fi", "Concierge service", "Business facilities"},
	3: {"Free Wi-Fi", "Continental breakfast", "Air conditioning", "TV and cable", "Private bathroom", "24-hour front desk"},
	2: {"Free Wi-Fi", "Air conditioning", "Private bathroom", "Daily housekeeping"},
	1: {"Free Wi-Fi", "Shared facilities", "Basic accommodation"},
}

// RenderTour renders one tour; index feeds the price heuristic.
func RenderTour(t Tour, index int) string {
	duration := t.Duration.Or(defaultTourDuration)
	price := TourPrice(string(t.Destination.Name), duration, index)

	var b strings.Builder
	fmt.Fprintf(&b, "TOUR: %s\n\n", t.Name.Or("Amazing Travel Experience"))
	fmt.Fprintf(&b, "Description: %s\n\n", t.Description.Or("Discover breathtaking destinations with our expertly crafted tour packages. Experience local culture, stunning landscapes, and unforgettable adventures."))
	fmt.Fprintf(&b, "Destination: %s\n", t.Destination.Name.Or("Premium Destination"))
	fmt.Fprintf(&b, "Location: %s\n", t.Location.Or("Beautiful scenic location"))
	fmt.Fprintf(&b, "Price: $%d USD (includes accommodation, meals, and guided tours)\n", price)
	fmt.Fprintf(&b, "Duration: %s\n", duration)
	fmt.Fprintf(&b, "Tour Type: %s\n\n", t.Type.Or("Cultural & Adventure"))

	b.WriteString("Highlights:\n")
	bullets(&b, []string{
		"Stunning scenic views and photo opportunities",
		"Professional English-speaking guide",
		"Authentic local cuisine experience",
		"Comfortable accommodation included",
		"Small group tours (max 12 people)",
	})

	fmt.Fprintf(&b, "\nDetailed Itinerary:\n%s\n\n", t.Itinerary.Or("Day 1: Arrival and city exploration | Day 2: Main attractions and cultural sites | Day 3: Adventure activities and local experiences | Day 4: Departure"))

	b.WriteString("Package Includes:\n")
	bullets(&b, []string{
		"Round-trip transportation",
		"Professional tour guide",
		"All entrance fees",
		"Daily breakfast and select meals",
		"Comfortable accommodation",
		"Travel insurance",
	})

	b.WriteString("\nNot Included:\n")
	bullets(&b, []string{
		"International flights",
		"Personal expenses",
		"Optional activities",
		"Tips for guide and driver",
	})

	fmt.Fprintf(&b, "\nSpecial Notes:\n%s\n\n", t.Notes.Or("Book early for best rates! Group discounts available. Free cancellation up to 7 days before departure."))

	b.WriteString("Booking Information:\n")
	b.WriteString("Contact CMP Travel for reservations and custom itineraries.\n")
	b.WriteString("Phone: +84 28 1234 5678\n")
	b.WriteString("Email: booking@cmp-travel.com")
	return b.String()
}

// RenderHotel renders one hotel; index feeds the nightly rate heuristic.
func RenderHotel(h Hotel, index int) string {
	stars := HotelStars(string(h.Type), h.Amenities)
	rate := NightlyRate(stars, index)

	amenities := []string(h.Amenities)
	if len(amenities) == 0 {
		amenities = starAmenities[stars]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "HOTEL: %s\n\n", h.Name.Or("Premium Hotel & Resort"))
	fmt.Fprintf(&b, "Address: %s\n", h.Address.Or("Prime city/resort location"))
	fmt.Fprintf(&b, "City: %s\n", h.City.Or("Major destination"))
	fmt.Fprintf(&b, "Country: %s\n\n", h.Country.Or("Vietnam"))
	fmt.Fprintf(&b, "Description: %s\n\n", h.Description.Or(fmt.Sprintf("Elegant %d-star accommodation offering exceptional comfort and service in a prime location.", stars)))
	fmt.Fprintf(&b, "Star Rating: %d stars\n", stars)
	fmt.Fprintf(&b, "Hotel Type: %s\n", h.Type.Or(fmt.Sprintf("%d-star Hotel", stars)))
	fmt.Fprintf(&b, "Price: $%d USD per night (excluding taxes and fees)\n\n", rate)

	b.WriteString("Amenities & Facilities:\n")
	bullets(&b, amenities)

	b.WriteString("\nServices:\n")
	bullets(&b, []string{
		"Professional multilingual staff",
		"24-hour front desk assistance",
		"Luggage storage and concierge",
		"Tour booking and travel assistance",
		"Airport transfer available",
		"Laundry and dry cleaning",
		"Currency exchange",
	})

	b.WriteString("\nContact Information:\n")
	fmt.Fprintf(&b, "Email: %s\n", h.Contact.Email.Or("reservations@hotel.com"))
	fmt.Fprintf(&b, "Phone: %s\n", h.Contact.Phone.Or("+84 28 1234 5678"))
	fmt.Fprintf(&b, "Website: %s\n\n", h.Contact.Website.Or("www.hotel.com"))

	b.WriteString("Booking Policies:\n")
	bullets(&b, []string{
		"Check-in: 3:00 PM | Check-out: 12:00 PM",
		"Free cancellation up to 24 hours before arrival",
		"Children under 12 stay free with parents",
		"Pet-friendly options available",
		"Non-smoking rooms available",
	})

	b.WriteString("\nSpecial CMP Travel Rates Available!\n")
	b.WriteString("Contact: booking@cmp-travel.com for exclusive deals")
	return b.String()
}

func RenderBlog(p Blog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "BLOG POST: %s\n\n", p.Title.Or("N/A"))
	fmt.Fprintf(&b, "Author: %s\n", p.Author.Or("N/A"))
	fmt.Fprintf(&b, "Category: %s\n", p.Category.Or("N/A"))
	fmt.Fprintf(&b, "Tags: %s\n\n", p.Tags.Join())
	fmt.Fprintf(&b, "Excerpt: %s\n\n", p.Excerpt.Or("No excerpt available"))
	fmt.Fprintf(&b, "Content:\n%s\n\n", p.Content.Or("No content available"))
	fmt.Fprintf(&b, "Related Location: %s\n", p.Location.Or("N/A"))
	fmt.Fprintf(&b, "Created Date: %s", p.CreatedAt.Or("N/A"))
	return b.String()
}

func RenderGuide(g Guide) string {
	var b strings.Builder
	fmt.Fprintf(&b, "TOUR GUIDE: %s\n\n", g.Name.Or("N/A"))
	fmt.Fprintf(&b, "Email: %s\n", g.Email.Or("N/A"))
	fmt.Fprintf(&b, "Phone: %s\n\n", g.Phone.Or("N/A"))
	fmt.Fprintf(&b, "Experience: %s years\n", g.Experience.Or("N/A"))
	fmt.Fprintf(&b, "Specialties: %s\n", g.Specialties.Join())
	fmt.Fprintf(&b, "Languages: %s\n\n", g.Languages.Join())
	fmt.Fprintf(&b, "Biography:\n%s\n\n", g.Bio.Or("No biography available"))
	fmt.Fprintf(&b, "Rating: %s/5\n", g.Rating.Or("N/A"))
	fmt.Fprintf(&b, "Operating Regions: %s\n\n", g.Regions.Join())
	fmt.Fprintf(&b, "Hourly Rate: %s VND/hour", g.HourlyRate.Or("N/A"))
	return b.String()
}

// CompanyInfo is the general company profile document.
const CompanyInfo = `CMP TRAVEL COMPANY INFORMATION

CMP Travel is a premium travel company specializing in high-quality travel services in Vietnam and Southeast Asia.

MAIN SERVICES:
- Travel consulting and tour organization (domestic and international)
- Hotel booking with preferential rates
- Professional tour guide services
- Visa consulting and immigration procedures
- Travel vehicle rental services
- Travel insurance

KEY FEATURES:
- Experienced and professional tour guides
- Competitive and transparent pricing
- 24/7 customer service
- Guaranteed tour quality
- Online hotel booking support

CONTACT INFORMATION:
Website: cmp-travel.com
Email: info@cmp-travel.com
Hotline: 1900 1234
Address: 123 ABC Street, District 1, Ho Chi Minh City

COMPANY POLICIES:
- 100% refund if tour is cancelled 7 days in advance
- Guaranteed departure with minimum 10 guests
- Travel insurance for all customers
- 24/7 customer support throughout the journey`

func bullets(b *strings.Builder, items []string) {
	for _, it := range items {
		fmt.Fprintf(b, "• %s\n", it)
	}
}
