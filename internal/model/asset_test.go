package model

import (
	"reflect"
	"testing"
)

func TestAssetObjectMetadataRoundTrip(t *testing.T) {
	asset := MediaAsset{
		Filename:           "a.jpg",
		RemoteKey:          "gallery/2024/x/a.webp",
		PublicURL:          "https://cdn.example.com/gallery/2024/x/a.webp",
		Width:              3840,
		Height:             2560,
		PlaceholderDataURI: "data:image/webp;base64,AAAA",
		PlaceholderWidth:   20,
		PlaceholderHeight:  13,
		Exif: ExifSummary{
			Make:         "Canon",
			Model:        "EOS R5",
			ExposureTime: "1/500",
			FNumber:      "2.8",
			ISO:          "100",
		},
	}

	meta, err := asset.ToObjectMetadata()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if meta[MetaWidth] != "3840" || meta[MetaHeight] != "2560" {
		t.Errorf("unexpected dimension metadata: %v", meta)
	}

	got, err := AssetFromObjectMetadata(asset.Filename, asset.RemoteKey, asset.PublicURL, meta)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(got, asset) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, asset)
	}
}

func TestAssetMetadataExcludesFeatured(t *testing.T) {
	asset := MediaAsset{Filename: "a.jpg", IsFeatured: true}

	meta, err := asset.ToObjectMetadata()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got, err := AssetFromObjectMetadata("a.jpg", "k", "u", meta)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// featuring is per entry and per build, never persisted on the store
	if got.IsFeatured {
		t.Error("IsFeatured must not survive the metadata round trip")
	}
}

func TestAssetFromObjectMetadata_PartialMetadata(t *testing.T) {
	got, err := AssetFromObjectMetadata("a.jpg", "k", "u", map[string]string{MetaWidth: "100"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Width != 100 || got.Height != 0 {
		t.Errorf("unexpected asset %+v", got)
	}
}

func TestAssetFromObjectMetadata_BadValues(t *testing.T) {
	if _, err := AssetFromObjectMetadata("a.jpg", "k", "u", map[string]string{MetaWidth: "wide"}); err == nil {
		t.Error("expected error for a non-numeric dimension")
	}
	if _, err := AssetFromObjectMetadata("a.jpg", "k", "u", map[string]string{MetaExif: "{broken"}); err == nil {
		t.Error("expected error for broken exif json")
	}
}
