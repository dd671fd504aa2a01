package testutil

import (
	"encoding/json"
	"fmt"

	"github.com/quantmind-br/ymaps2gpx/internal/domain"
)

// SharePage builds a minimal Yandex Maps share page embedding the given
// bookmark list in a state-view script block.
func SharePage(list domain.BookmarkList) []byte {
	state := map[string]any{
		"config": map[string]any{
			"bookmarksPublicList": list,
		},
	}
	raw, err := json.Marshal(state)
	if err != nil {
		panic(err)
	}

	return []byte(fmt.Sprintf(`<!DOCTYPE html>
<html lang="ru">
<head><meta charset="utf-8"><title>Яндекс Карты</title></head>
<body>
<div id="maps-app"></div>
<script type="application/json" class="state-view">%s</script>
</body>
</html>`, raw))
}

// GeocoderResponse builds a Yandex geocoder JSON response with a single
// feature at the given position and address.
func GeocoderResponse(lon, lat float64, address string) []byte {
	body := fmt.Sprintf(`{
  "response": {
    "GeoObjectCollection": {
      "featureMember": [
        {
          "GeoObject": {
            "metaDataProperty": {
              "GeocoderMetaData": {"text": %q}
            },
            "Point": {"pos": "%g %g"}
          }
        }
      ]
    }
  }
}`, address, lon, lat)
	return []byte(body)
}

// EmptyGeocoderResponse builds a geocoder response with no features
func EmptyGeocoderResponse() []byte {
	return []byte(`{"response":{"GeoObjectCollection":{"featureMember":[]}}}`)
}
