package sirqul

import (
	"encoding/json"
	"testing"
)

func TestID_UnmarshalJSON(t *testing.T) {
	var payload struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a": 4121, "b": "4121", "c": null}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.A != "4121" {
		t.Fatalf("numeric id: expected 4121, got %q", payload.A)
	}
	if payload.B != "4121" {
		t.Fatalf("string id: expected 4121, got %q", payload.B)
	}
	if payload.C != "" {
		t.Fatalf("null id: expected empty, got %q", payload.C)
	}
	if payload.A != payload.B {
		t.Fatal("numeric and string forms of the same id must compare equal")
	}
}

func TestBrandFromRecord_SubtypeIdentity(t *testing.T) {
	rec := AlbumRecord{
		AlbumID:    "99",
		AudienceID: "777",
		Title:      "Album Title",
		Name:       "Audience Name",
		SubType:    "acme-brand",
		MetaData:   `{"sirqul_album_id": 55, "cover_photo": "http://img/c.png", "thumb_photo": "http://img/t.png"}`,
		Favorite:   true,
	}

	album := BrandFromRecord(rec, SubtypeAlbum)
	if album.ID != "99" || album.Title != "Album Title" {
		t.Fatalf("album subtype: expected id=99 title=Album Title, got id=%s title=%s", album.ID, album.Title)
	}

	audience := BrandFromRecord(rec, SubtypeAudience)
	if audience.ID != "55" || audience.Title != "Audience Name" {
		t.Fatalf("audience subtype: expected id=55 title=Audience Name, got id=%s title=%s", audience.ID, audience.Title)
	}

	for _, b := range []struct {
		name string
		got  string
		want string
	}{
		{"slug", album.Slug, "acme-brand"},
		{"cover", album.CoverPhoto, "http://img/c.png"},
		{"thumb", album.ThumbnailPhoto, "http://img/t.png"},
	} {
		if b.got != b.want {
			t.Errorf("%s: expected %q, got %q", b.name, b.want, b.got)
		}
	}
	if !album.IsFavorite {
		t.Fatal("favorite flag must carry over from the record")
	}
}

func TestEntityFromRecord_MalformedMetadata(t *testing.T) {
	rec := AlbumRecord{
		AlbumID:  "12",
		Title:    "Broken Meta",
		MetaData: `{"cover_photo": `,
	}

	e := entityFromRecord(rec, SubtypeAlbum)
	if e.ID != "12" || e.Title != "Broken Meta" {
		t.Fatalf("entity fields must survive a broken metadata blob, got id=%s title=%s", e.ID, e.Title)
	}
	if e.CoverPhoto != "" || e.ThumbnailPhoto != "" {
		t.Fatal("broken metadata must yield empty photo fields, not an error")
	}
}

func TestEntityFromRecord_EmptyMetadata(t *testing.T) {
	e := entityFromRecord(AlbumRecord{AlbumID: "1", Title: "t"}, SubtypeAlbum)
	if e.CoverPhoto != "" || e.PublishDate != "" {
		t.Fatal("empty metadata must yield zero-valued optional fields")
	}
}

func TestEpisodeFromRecord_NegativeCountersClamp(t *testing.T) {
	ep := EpisodeFromRecord(AlbumRecord{
		AlbumID:   "7",
		ViewCount: -3,
		LikeCount: -1,
	}, SubtypeAlbum)

	if ep.Views != 0 {
		t.Fatalf("negative view count must clamp to 0, got %d", ep.Views)
	}
	if ep.Likes != 0 {
		t.Fatalf("negative like count must clamp to 0, got %d", ep.Likes)
	}

	ep = EpisodeFromRecord(AlbumRecord{AlbumID: "7", ViewCount: 12, LikeCount: 4}, SubtypeAlbum)
	if ep.Views != 12 || ep.Likes != 4 {
		t.Fatalf("positive counters must pass through, got views=%d likes=%d", ep.Views, ep.Likes)
	}
}

func TestEpisodeFromRecord_OfferAudiencePartitioning(t *testing.T) {
	linked := `{"offerAudiences": [
		{"audienceType": "star-primary", "name": "Star One", "metaData": "{\"sirqul_album_id\": 1}"},
		{"audienceType": "star-secondary", "name": "Star Two", "metaData": "{\"sirqul_album_id\": 2}"},
		{"audienceType": "series", "name": "Series One", "metaData": "{\"sirqul_album_id\": 3}"},
		{"audienceType": "brand", "name": "Brand A", "metaData": "{\"sirqul_album_id\": 4}"},
		{"audienceType": "brand-x", "name": "Brand B", "metaData": "{\"sirqul_album_id\": 5}"},
		{"audienceType": "charities", "name": "Charity A", "metaData": "{\"sirqul_album_id\": 6}"},
		{"audienceType": "category", "name": "Cat A", "metaData": "{\"sirqul_album_id\": 7}"},
		{"audienceType": "Star", "name": "Wrong Case", "metaData": "{\"sirqul_album_id\": 8}"},
		{"audienceType": "unknown", "name": "Dropped", "metaData": "{\"sirqul_album_id\": 9}"}
	]}`

	ep := EpisodeFromRecord(AlbumRecord{AlbumID: "e1", LinkedObjectResponse: linked}, SubtypeAlbum)

	if ep.Star == nil || ep.Star.ID != "1" || ep.Star.Title != "Star One" {
		t.Fatalf("star bucket must be first-wins, got %+v", ep.Star)
	}
	if ep.Series == nil || ep.Series.ID != "3" {
		t.Fatalf("series bucket missing, got %+v", ep.Series)
	}
	if len(ep.Brands) != 2 {
		t.Fatalf("expected 2 brands, got %d", len(ep.Brands))
	}
	if len(ep.Charities) != 1 || ep.Charities[0].ID != "6" {
		t.Fatalf("expected 1 charity with id 6, got %+v", ep.Charities)
	}
	if len(ep.Categories) != 1 || ep.Categories[0].ID != "7" {
		t.Fatalf("expected 1 category with id 7, got %+v", ep.Categories)
	}
}

func TestEpisodeFromRecord_MalformedLinkedObjects(t *testing.T) {
	ep := EpisodeFromRecord(AlbumRecord{
		AlbumID:              "e2",
		LinkedObjectResponse: `{"offerAudiences": [`,
	}, SubtypeAlbum)

	if ep.Star != nil || ep.Series != nil || len(ep.Brands) != 0 {
		t.Fatal("broken linkedObjectResponse must yield an episode with no audiences, not an error")
	}
}

func TestEpisodeFromRecord_VideoAndMeta(t *testing.T) {
	ep := EpisodeFromRecord(AlbumRecord{
		AlbumID:  "e3",
		MetaData: `{"videos": ["http://v/1.mp4", "http://v/2.mp4"], "runtime": 42, "episode_number": 3, "order_category": ["9-1", "12-4"]}`,
	}, SubtypeAlbum)

	if ep.Video != "http://v/1.mp4" {
		t.Fatalf("expected first video, got %q", ep.Video)
	}
	if ep.Runtime != 42 || ep.EpisodeNumber != 3 {
		t.Fatalf("expected runtime=42 number=3, got %d/%d", ep.Runtime, ep.EpisodeNumber)
	}
	if len(ep.OrderCategory) != 2 || ep.OrderCategory[1] != "12-4" {
		t.Fatalf("order_category must carry through, got %v", ep.OrderCategory)
	}
}

func TestOfferFromRecord_SlugSynthesis(t *testing.T) {
	o := OfferFromRecord(AlbumRecord{
		AlbumID:  "501",
		Title:    "Free Shipping",
		MetaData: `{"view_points": 5, "save_points": 10, "share_points": 20, "rfi_link": "http://rfi"}`,
	}, SubtypeAlbum)

	if o.Slug != "offer-501" {
		t.Fatalf("expected synthesized slug offer-501, got %q", o.Slug)
	}
	if o.ViewPoints != 5 || o.SavePoints != 10 || o.SharePoints != 20 {
		t.Fatalf("point values must come from metadata, got %d/%d/%d", o.ViewPoints, o.SavePoints, o.SharePoints)
	}
	if o.RFILink != "http://rfi" {
		t.Fatalf("expected rfi link, got %q", o.RFILink)
	}

	withSlug := OfferFromRecord(AlbumRecord{AlbumID: "502", SubType: "summer-deal"}, SubtypeAlbum)
	if withSlug.Slug != "summer-deal" {
		t.Fatalf("existing slug must win, got %q", withSlug.Slug)
	}
}

func TestOfferFromRecord_BrandNesting(t *testing.T) {
	o := OfferFromRecord(AlbumRecord{
		AlbumID: "600",
		Brands: []AlbumRecord{
			{AlbumID: "b1", Title: "First Brand"},
			{AlbumID: "b2", Title: "Second Brand"},
		},
	}, SubtypeAlbum)

	if o.Brand == nil || o.Brand.ID != "b1" {
		t.Fatalf("offer must nest its first brand, got %+v", o.Brand)
	}
}

func TestCategoryFromRecord_EpisodeList(t *testing.T) {
	c := CategoryFromRecord(AlbumRecord{
		AlbumID:  "20",
		Title:    "Recently Added",
		MetaData: `{"random": true}`,
		Episodes: []AlbumRecord{{AlbumID: "e1"}, {AlbumID: "e2"}},
	}, SubtypeAlbum)

	if !c.Random {
		t.Fatal("random flag must come from metadata")
	}
	if c.Episodes == nil || c.Episodes.Total != 2 || len(c.Episodes.Episodes) != 2 {
		t.Fatalf("expected episode list with 2 entries, got %+v", c.Episodes)
	}

	empty := CategoryFromRecord(AlbumRecord{AlbumID: "21"}, SubtypeAlbum)
	if empty.Episodes != nil {
		t.Fatal("categories with no episodes must omit the list")
	}
}

func TestStarFromRecord_NestedSeries(t *testing.T) {
	s := StarFromRecord(AlbumRecord{
		AlbumID: "s1",
		Series: []AlbumRecord{{
			AlbumID: "se1",
			Brands:  []AlbumRecord{{AlbumID: "b1"}},
		}},
	}, SubtypeAlbum)

	if len(s.Series) != 1 || len(s.Series[0].Brands) != 1 {
		t.Fatalf("nested series graph must map recursively, got %+v", s.Series)
	}
}
