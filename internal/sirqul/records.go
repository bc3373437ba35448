// Package sirqul wraps the third-party album/audience platform: an HTTP
// client for its search/get endpoints and the mapping of its raw records
// into the canonical catalog entities.
package sirqul

import (
	"encoding/json"
	"strings"
)

// Subtype discriminates the two upstream representations of the same
// logical entity.
type Subtype string

const (
	SubtypeAlbum    Subtype = "album"
	SubtypeAudience Subtype = "audience"
)

// ID accepts both numeric and string ids in upstream payloads and
// canonicalizes them to a string, so every downstream comparison is a
// plain string equality.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*id = ""
		return nil
	}
	if s[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*id = ID(v)
		return nil
	}
	*id = ID(s)
	return nil
}

// AlbumRecord is the raw upstream payload shared by album and audience
// responses. Nested collections arrive as child records and are mapped
// recursively through the sibling normalizers.
type AlbumRecord struct {
	AlbumID     ID      `json:"albumId"`
	AudienceID  ID      `json:"audienceId"`
	Title       string  `json:"title"`
	Name        string  `json:"name"`
	SubType     string  `json:"subType"`
	AlbumType   string  `json:"albumType"`
	Description string  `json:"description"`
	MetaData    string  `json:"metaData"`
	Favorite    bool    `json:"favorite"`
	HasLiked    bool    `json:"hasLiked"`
	Rating      float64 `json:"rating"`
	TotalVideos int     `json:"totalVideos"`
	ViewCount   int     `json:"viewCount"`
	LikeCount   int     `json:"likeCount"`
	CreatedDate int64   `json:"createdDate"`

	LinkedObjectResponse string `json:"linkedObjectResponse"`

	Offers     []AlbumRecord `json:"offers"`
	Stars      []AlbumRecord `json:"stars"`
	Episodes   []AlbumRecord `json:"episodes"`
	Brands     []AlbumRecord `json:"brands"`
	Charities  []AlbumRecord `json:"charities"`
	Categories []AlbumRecord `json:"categories"`
	Series     []AlbumRecord `json:"series"`
}

// AudienceRecord is an offerAudiences element: an album-shaped record
// tagged with the audienceType the episode normalizer partitions on.
type AudienceRecord struct {
	AlbumRecord
	AudienceType string `json:"audienceType"`
}

// meta is the parsed form of the metaData JSON blob.
type meta struct {
	SirqulAlbumID ID       `json:"sirqul_album_id"`
	CoverPhoto    string   `json:"cover_photo"`
	ThumbPhoto    string   `json:"thumb_photo"`
	Videos        []string `json:"videos"`
	PromoPhotos   []string `json:"promo_photos"`
	Runtime       int      `json:"runtime"`
	EpisodeNumber int      `json:"episode_number"`
	PublishDate   string   `json:"publish_date"`
	OrderCategory []string `json:"order_category"`
	Random        bool     `json:"random"`
	ViewPoints    int      `json:"view_points"`
	SavePoints    int      `json:"save_points"`
	SharePoints   int      `json:"share_points"`
	RFILink       string   `json:"rfi_link"`
}

// parseMeta decodes the metaData blob. Absent or malformed blobs yield an
// empty meta; a broken blob must never fail the entity.
func parseMeta(raw string) meta {
	if strings.TrimSpace(raw) == "" {
		return meta{}
	}
	var m meta
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return meta{}
	}
	return m
}

// linkedObjects is the parsed form of an episode's linkedObjectResponse.
type linkedObjects struct {
	OfferAudiences []AudienceRecord `json:"offerAudiences"`
}

func parseLinked(raw string) linkedObjects {
	if strings.TrimSpace(raw) == "" {
		return linkedObjects{}
	}
	var l linkedObjects
	if err := json.Unmarshal([]byte(raw), &l); err != nil {
		return linkedObjects{}
	}
	return l
}
