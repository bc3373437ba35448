package sirqul

import (
	"strings"

	"github.com/example/media-platform/internal/catalog"
)

// entity maps the fields shared by every family. For the audience subtype
// the stable id lives in metaData.sirqul_album_id and the display name in
// the record's name field; for the album subtype the record's own albumId
// and title are authoritative. Photo fields populate only when present.
func entityFromRecord(r AlbumRecord, sub Subtype) catalog.Entity {
	m := parseMeta(r.MetaData)

	e := catalog.Entity{
		Slug:        r.SubType,
		Description: r.Description,
		PublishDate: m.PublishDate,
		IsFavorite:  r.Favorite,
		IsLiked:     r.HasLiked,
		AudienceID:  string(r.AudienceID),
		AlbumType:   r.AlbumType,
		TotalVideos: r.TotalVideos,
	}
	if sub == SubtypeAudience {
		e.ID = string(m.SirqulAlbumID)
		e.Title = r.Name
	} else {
		e.ID = string(r.AlbumID)
		e.Title = r.Title
	}
	if m.CoverPhoto != "" {
		e.CoverPhoto = m.CoverPhoto
	}
	if m.ThumbPhoto != "" {
		e.ThumbnailPhoto = m.ThumbPhoto
	}
	return e
}

func BrandFromRecord(r AlbumRecord, sub Subtype) catalog.Brand {
	b := catalog.Brand{Entity: entityFromRecord(r, sub)}
	for _, o := range r.Offers {
		b.Offers = append(b.Offers, OfferFromRecord(o, sub))
	}
	for _, ep := range r.Episodes {
		b.Episodes = append(b.Episodes, EpisodeFromRecord(ep, sub))
	}
	return b
}

func CharityFromRecord(r AlbumRecord, sub Subtype) catalog.Charity {
	c := catalog.Charity{Entity: entityFromRecord(r, sub)}
	for _, ep := range r.Episodes {
		c.Episodes = append(c.Episodes, EpisodeFromRecord(ep, sub))
	}
	return c
}

func StarFromRecord(r AlbumRecord, sub Subtype) catalog.Star {
	s := catalog.Star{Entity: entityFromRecord(r, sub)}
	for _, sr := range r.Series {
		s.Series = append(s.Series, SeriesFromRecord(sr, sub))
	}
	return s
}

func SeriesFromRecord(r AlbumRecord, sub Subtype) catalog.Series {
	s := catalog.Series{Entity: entityFromRecord(r, sub)}
	for _, b := range r.Brands {
		s.Brands = append(s.Brands, BrandFromRecord(b, sub))
	}
	for _, c := range r.Charities {
		s.Charities = append(s.Charities, CharityFromRecord(c, sub))
	}
	for _, ep := range r.Episodes {
		s.Episodes = append(s.Episodes, EpisodeFromRecord(ep, sub))
	}
	for _, o := range r.Offers {
		s.Offers = append(s.Offers, OfferFromRecord(o, sub))
	}
	return s
}

func CategoryFromRecord(r AlbumRecord, sub Subtype) catalog.Category {
	m := parseMeta(r.MetaData)
	c := catalog.Category{Entity: entityFromRecord(r, sub), Random: m.Random}
	if len(r.Episodes) > 0 {
		list := &catalog.EpisodeList{Total: len(r.Episodes)}
		for _, ep := range r.Episodes {
			list.Episodes = append(list.Episodes, EpisodeFromRecord(ep, sub))
		}
		c.Episodes = list
	}
	return c
}

func EpisodeFromRecord(r AlbumRecord, sub Subtype) catalog.Episode {
	m := parseMeta(r.MetaData)

	ep := catalog.Episode{
		Entity:        entityFromRecord(r, sub),
		Runtime:       m.Runtime,
		EpisodeNumber: m.EpisodeNumber,
		Views:         nonNegative(r.ViewCount),
		Likes:         nonNegative(r.LikeCount),
		Rating:        r.Rating,
		CreatedAt:     r.CreatedDate,
		OrderCategory: m.OrderCategory,
	}
	if len(m.Videos) > 0 {
		ep.Video = m.Videos[0]
	}

	// offerAudiences elements are tagged by audienceType prefix; each
	// bucket becomes the matching nested field. An episode references at
	// most one star and one series, so those buckets are first-wins.
	linked := parseLinked(r.LinkedObjectResponse)
	for _, a := range linked.OfferAudiences {
		switch {
		case strings.HasPrefix(a.AudienceType, "star"):
			if ep.Star == nil {
				star := StarFromRecord(a.AlbumRecord, SubtypeAudience)
				ep.Star = &star
			}
		case strings.HasPrefix(a.AudienceType, "series"):
			if ep.Series == nil {
				series := SeriesFromRecord(a.AlbumRecord, SubtypeAudience)
				ep.Series = &series
			}
		case strings.HasPrefix(a.AudienceType, "brand"):
			ep.Brands = append(ep.Brands, BrandFromRecord(a.AlbumRecord, SubtypeAudience))
		case strings.HasPrefix(a.AudienceType, "charities"):
			ep.Charities = append(ep.Charities, CharityFromRecord(a.AlbumRecord, SubtypeAudience))
		case strings.HasPrefix(a.AudienceType, "category"):
			ep.Categories = append(ep.Categories, CategoryFromRecord(a.AlbumRecord, SubtypeAudience))
		}
	}
	return ep
}

func OfferFromRecord(r AlbumRecord, sub Subtype) catalog.Offer {
	m := parseMeta(r.MetaData)
	e := entityFromRecord(r, sub)

	// Upstream offers have no natural slug; synthesize one from the id.
	slug := r.SubType
	if strings.TrimSpace(slug) == "" {
		slug = "offer-" + e.ID
	}

	o := catalog.Offer{
		ID:             e.ID,
		Title:          e.Title,
		Slug:           slug,
		Description:    r.Description,
		ViewPoints:     m.ViewPoints,
		SavePoints:     m.SavePoints,
		SharePoints:    m.SharePoints,
		RFILink:        m.RFILink,
		ThumbnailPhoto: e.ThumbnailPhoto,
		PromoPhotos:    m.PromoPhotos,
		IsFavorite:     r.Favorite,
	}
	if len(r.Brands) > 0 {
		b := BrandFromRecord(r.Brands[0], sub)
		o.Brand = &b
	}
	return o
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
