package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseBookmarkURI tests parsing of bookmark entry identifiers
func TestParseBookmarkURI(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    *BookmarkURI
		wantErr error
	}{
		{
			name: "pin with plain coordinates",
			raw:  "ymapsbm1://pin?ll=30.5,59.9",
			want: &BookmarkURI{Kind: URIKindPin, Lon: 30.5, Lat: 59.9},
		},
		{
			name: "pin with url-encoded comma",
			raw:  "ymapsbm1://pin?ll=37.6%2C55.7",
			want: &BookmarkURI{Kind: URIKindPin, Lon: 37.6, Lat: 55.7},
		},
		{
			name: "pin with negative coordinates",
			raw:  "ymapsbm1://pin?ll=-0.1276,51.5072",
			want: &BookmarkURI{Kind: URIKindPin, Lon: -0.1276, Lat: 51.5072},
		},
		{
			name: "org reference",
			raw:  "ymapsbm1://org?oid=1124715036",
			want: &BookmarkURI{Kind: URIKindOrg, OID: "1124715036"},
		},
		{
			name:    "pin without ll parameter",
			raw:     "ymapsbm1://pin?zoom=12",
			wantErr: ErrInvalidCoordinates,
		},
		{
			name:    "pin with single coordinate",
			raw:     "ymapsbm1://pin?ll=30.5",
			wantErr: ErrInvalidCoordinates,
		},
		{
			name:    "pin with non-numeric coordinates",
			raw:     "ymapsbm1://pin?ll=abc,def",
			wantErr: ErrInvalidCoordinates,
		},
		{
			name:    "org without oid",
			raw:     "ymapsbm1://org?name=cafe",
			wantErr: ErrUnknownURIFormat,
		},
		{
			name:    "wrong scheme",
			raw:     "https://yandex.ru/maps",
			wantErr: ErrUnknownURIFormat,
		},
		{
			name:    "unknown host",
			raw:     "ymapsbm1://route?points=1",
			wantErr: ErrUnknownURIFormat,
		},
		{
			name:    "empty string",
			raw:     "",
			wantErr: ErrUnknownURIFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBookmarkURI(tt.raw)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want.Kind, got.Kind)
			assert.Equal(t, tt.raw, got.Raw)
			switch tt.want.Kind {
			case URIKindPin:
				assert.InDelta(t, tt.want.Lon, got.Lon, 1e-9)
				assert.InDelta(t, tt.want.Lat, got.Lat, 1e-9)
			case URIKindOrg:
				assert.Equal(t, tt.want.OID, got.OID)
			}
		})
	}
}

// TestBookmarkURI_String tests that the original text is preserved
func TestBookmarkURI_String(t *testing.T) {
	raw := "ymapsbm1://org?oid=42"
	u, err := ParseBookmarkURI(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, u.String())
}
