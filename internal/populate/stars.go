package populate

import (
	"context"

	"github.com/example/media-platform/internal/catalog"
)

// Stars annotates a batch of stars and everything nested under their
// series. The same brand, charity, episode or offer frequently appears
// under several series of several stars, so the nested occurrences are
// first flattened into identity maps, each distinct entity is populated
// exactly once, and the populated object is then scattered back into
// every position it originally occupied. Every occurrence of an id must
// end up with the identical populated object.
func (s *Service) Stars(ctx context.Context, userID string, stars []catalog.Star) error {
	if userID == "" {
		return nil
	}

	brandM := make(map[string]*catalog.Brand)
	charityM := make(map[string]*catalog.Charity)
	episodeM := make(map[string]*catalog.Episode)
	offerM := make(map[string]*catalog.Offer)

	for si := range stars {
		for sj := range stars[si].Series {
			se := &stars[si].Series[sj]
			for i := range se.Brands {
				if _, ok := brandM[se.Brands[i].ID]; !ok {
					b := se.Brands[i]
					brandM[b.ID] = &b
				}
			}
			for i := range se.Charities {
				if _, ok := charityM[se.Charities[i].ID]; !ok {
					c := se.Charities[i]
					charityM[c.ID] = &c
				}
			}
			for i := range se.Episodes {
				if _, ok := episodeM[se.Episodes[i].ID]; !ok {
					e := se.Episodes[i]
					episodeM[e.ID] = &e
				}
			}
			for i := range se.Offers {
				if _, ok := offerM[se.Offers[i].ID]; !ok {
					o := se.Offers[i]
					offerM[o.ID] = &o
				}
			}
		}
	}

	// Populate the flattened sets and the stars/series themselves in one
	// pass of batched lookups.
	c := newCollector()
	for i := range stars {
		c.add(catalog.EntityTypeStar, stars[i].ID)
		for j := range stars[i].Series {
			c.add(catalog.EntityTypeSeries, stars[i].Series[j].ID)
		}
	}
	for id := range brandM {
		c.add(catalog.EntityTypeBrand, id)
	}
	for id := range charityM {
		c.add(catalog.EntityTypeCharity, id)
	}
	for id := range episodeM {
		c.add(catalog.EntityTypeEpisode, id)
	}
	for id := range offerM {
		c.add(catalog.EntityTypeOffer, id)
	}

	favored, liked, err := s.lookup(ctx, userID, c)
	if err != nil {
		return err
	}

	for _, b := range brandM {
		b.IsFavorite = favored[catalog.EntityTypeBrand][b.ID]
	}
	for _, c := range charityM {
		c.IsFavorite = favored[catalog.EntityTypeCharity][c.ID]
	}
	for _, e := range episodeM {
		e.IsFavorite = favored[catalog.EntityTypeEpisode][e.ID]
		e.IsLiked = liked[e.ID]
	}
	for _, o := range offerM {
		o.IsFavorite = favored[catalog.EntityTypeOffer][o.ID]
	}

	// Scatter the populated objects back into every original slot.
	for si := range stars {
		stars[si].IsFavorite = favored[catalog.EntityTypeStar][stars[si].ID]
		for sj := range stars[si].Series {
			se := &stars[si].Series[sj]
			se.IsFavorite = favored[catalog.EntityTypeSeries][se.ID]
			for i := range se.Brands {
				if p, ok := brandM[se.Brands[i].ID]; ok {
					se.Brands[i] = *p
				}
			}
			for i := range se.Charities {
				if p, ok := charityM[se.Charities[i].ID]; ok {
					se.Charities[i] = *p
				}
			}
			for i := range se.Episodes {
				if p, ok := episodeM[se.Episodes[i].ID]; ok {
					se.Episodes[i] = *p
				}
			}
			for i := range se.Offers {
				if p, ok := offerM[se.Offers[i].ID]; ok {
					se.Offers[i] = *p
				}
			}
		}
	}
	return nil
}
