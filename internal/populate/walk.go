package populate

import "github.com/example/media-platform/internal/catalog"

// visitor receives every entity occurrence in a canonical graph. The
// graph is acyclic (children never hold parent pointers), so plain
// recursion terminates.
type visitor struct {
	entity func(t catalog.EntityType, e *catalog.Entity)
	offer  func(o *catalog.Offer)
}

func walkBrand(b *catalog.Brand, v visitor) {
	v.entity(catalog.EntityTypeBrand, &b.Entity)
	for i := range b.Offers {
		walkOffer(&b.Offers[i], v)
	}
	for i := range b.Episodes {
		walkEpisode(&b.Episodes[i], v)
	}
}

func walkCharity(c *catalog.Charity, v visitor) {
	v.entity(catalog.EntityTypeCharity, &c.Entity)
	for i := range c.Episodes {
		walkEpisode(&c.Episodes[i], v)
	}
}

func walkStar(s *catalog.Star, v visitor) {
	v.entity(catalog.EntityTypeStar, &s.Entity)
	for i := range s.Series {
		walkSeries(&s.Series[i], v)
	}
}

func walkSeries(s *catalog.Series, v visitor) {
	v.entity(catalog.EntityTypeSeries, &s.Entity)
	for i := range s.Brands {
		walkBrand(&s.Brands[i], v)
	}
	for i := range s.Charities {
		walkCharity(&s.Charities[i], v)
	}
	for i := range s.Episodes {
		walkEpisode(&s.Episodes[i], v)
	}
	for i := range s.Offers {
		walkOffer(&s.Offers[i], v)
	}
}

func walkCategory(c *catalog.Category, v visitor) {
	v.entity(catalog.EntityTypeCategory, &c.Entity)
	if c.Episodes != nil {
		for i := range c.Episodes.Episodes {
			walkEpisode(&c.Episodes.Episodes[i], v)
		}
	}
}

func walkEpisode(e *catalog.Episode, v visitor) {
	v.entity(catalog.EntityTypeEpisode, &e.Entity)
	if e.Star != nil {
		walkStar(e.Star, v)
	}
	if e.Series != nil {
		walkSeries(e.Series, v)
	}
	for i := range e.Brands {
		walkBrand(&e.Brands[i], v)
	}
	for i := range e.Charities {
		walkCharity(&e.Charities[i], v)
	}
	for i := range e.Categories {
		walkCategory(&e.Categories[i], v)
	}
}

func walkOffer(o *catalog.Offer, v visitor) {
	v.offer(o)
	if o.Brand != nil {
		walkBrand(o.Brand, v)
	}
}
