package geocoder

// geocodeResponse mirrors the relevant slice of the Yandex geocoder HTTP
// API response: response.GeoObjectCollection.featureMember[].GeoObject.
type geocodeResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []featureMember `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

type featureMember struct {
	GeoObject geoObject `json:"GeoObject"`
}

type geoObject struct {
	Point struct {
		// Space-separated "<lon> <lat>"
		Pos string `json:"pos"`
	} `json:"Point"`
	MetaDataProperty struct {
		GeocoderMetaData struct {
			Text string `json:"text"`
		} `json:"GeocoderMetaData"`
	} `json:"metaDataProperty"`
}
