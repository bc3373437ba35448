// Package catalog defines the canonical entity graph returned to API
// callers regardless of whether the data originated in the relational
// store or the upstream partner platform.
package catalog

import (
	"fmt"
	"strings"
)

// EntityType is the stable numeric code a favorite/like row is keyed by.
type EntityType int

const (
	EntityTypeBrand    EntityType = 1
	EntityTypeCharity  EntityType = 2
	EntityTypeStar     EntityType = 3
	EntityTypeCategory EntityType = 4
	EntityTypeEpisode  EntityType = 5
	EntityTypeOffer    EntityType = 6
	EntityTypeSeries   EntityType = 7
)

func (t EntityType) String() string {
	switch t {
	case EntityTypeBrand:
		return "brand"
	case EntityTypeCharity:
		return "charity"
	case EntityTypeStar:
		return "star"
	case EntityTypeCategory:
		return "category"
	case EntityTypeEpisode:
		return "episode"
	case EntityTypeOffer:
		return "offer"
	case EntityTypeSeries:
		return "series"
	}
	return fmt.Sprintf("entity(%d)", int(t))
}

// ParseEntityType resolves a client-supplied type name to its code.
func ParseEntityType(s string) (EntityType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "brand", "brands":
		return EntityTypeBrand, nil
	case "charity", "charities":
		return EntityTypeCharity, nil
	case "star", "stars":
		return EntityTypeStar, nil
	case "category", "categories":
		return EntityTypeCategory, nil
	case "episode", "episodes":
		return EntityTypeEpisode, nil
	case "offer", "offers":
		return EntityTypeOffer, nil
	case "series":
		return EntityTypeSeries, nil
	}
	return 0, &InvalidRequestError{Message: fmt.Sprintf("unknown entity type %q", s)}
}

// Entity is the shape shared by Brand, Charity, Star, Category and Series.
// ID is always a string and is the key used for favorite lookups no matter
// which provenance the entity came from; relational numeric ids are
// stringified at the fetch boundary.
type Entity struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Slug           string `json:"slug"`
	Description    string `json:"description,omitempty"`
	CoverPhoto     string `json:"coverPhoto,omitempty"`
	ThumbnailPhoto string `json:"thumbnailPhoto,omitempty"`
	PublishDate    string `json:"publishDate,omitempty"`
	IsFavorite     bool   `json:"isFavorite"`
	IsLiked        bool   `json:"isLiked"`

	// Upstream-only extension fields; empty on the legacy path.
	AudienceID  string `json:"audienceId,omitempty"`
	AlbumType   string `json:"albumType,omitempty"`
	TotalVideos int    `json:"totalVideos,omitempty"`
}

type Brand struct {
	Entity
	Offers   []Offer   `json:"offers,omitempty"`
	Episodes []Episode `json:"episodes,omitempty"`
}

type Charity struct {
	Entity
	Episodes []Episode `json:"episodes,omitempty"`
}

type Star struct {
	Entity
	Series []Series `json:"series,omitempty"`
}

type Series struct {
	Entity
	Brands    []Brand   `json:"brands,omitempty"`
	Charities []Charity `json:"charities,omitempty"`
	Episodes  []Episode `json:"episodes,omitempty"`
	Offers    []Offer   `json:"offers,omitempty"`
}

type Category struct {
	Entity
	Random   bool         `json:"random,omitempty"`
	Episodes *EpisodeList `json:"episodes,omitempty"`
}

// EpisodeList is the nested envelope a category carries its episodes in.
type EpisodeList struct {
	Total    int       `json:"total"`
	Episodes []Episode `json:"episodes"`
}

type Episode struct {
	Entity
	Runtime       int      `json:"runtime,omitempty"`
	EpisodeNumber int      `json:"episodeNumber,omitempty"`
	Views         int      `json:"views"`
	Likes         int      `json:"likes"`
	Video         string   `json:"video,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
	CreatedAt     int64    `json:"createdAt,omitempty"`
	OrderCategory []string `json:"orderCategory,omitempty"`

	Star       *Star      `json:"star,omitempty"`
	Series     *Series    `json:"series,omitempty"`
	Brands     []Brand    `json:"brands,omitempty"`
	Charities  []Charity  `json:"charities,omitempty"`
	Categories []Category `json:"categories,omitempty"`
}

type Offer struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	Description    string   `json:"description,omitempty"`
	ViewPoints     int      `json:"viewPoints"`
	SavePoints     int      `json:"savePoints"`
	SharePoints    int      `json:"sharePoints"`
	RFILink        string   `json:"rfiLink,omitempty"`
	ThumbnailPhoto string   `json:"thumbnailPhoto,omitempty"`
	PromoPhotos    []string `json:"promoPhotos,omitempty"`
	Brand          *Brand   `json:"brand,omitempty"`
	IsFavorite     bool     `json:"isFavorite"`
}

// Listing is the envelope every list-returning operation uses.
// len(Items) never exceeds the requested limit; Total is the full count.
type Listing[T any] struct {
	Total int `json:"total"`
	Items []T `json:"items"`
}
