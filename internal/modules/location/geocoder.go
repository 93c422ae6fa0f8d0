// README: Batch geocoding of postcodes via the Google Maps Geocoding API.
package location

import (
	"context"
	"log"

	"googlemaps.github.io/maps"
)

// Geocoder resolves postcodes that are not covered by the static area table
// and writes the results into the shared postcode cache.
type Geocoder struct {
	client *maps.Client
	store  *Store
}

func NewGeocoder(client *maps.Client, store *Store) *Geocoder {
	return &Geocoder{client: client, store: store}
}

// LookupMany geocodes the given postcodes (deduplicated, normalized) and
// populates the cache. A postcode the API cannot resolve is cached as an
// explicitly empty PostcodeInfo; a failed API call is logged and skipped so
// the postcode stays unresolved and is retried on the next lookup.
func (g *Geocoder) LookupMany(ctx context.Context, postcodes []string) (map[string]*PostcodeInfo, error) {
	seen := make(map[string]struct{}, len(postcodes))
	out := make(map[string]*PostcodeInfo, len(postcodes))

	for _, pc := range postcodes {
		norm := Normalize(pc)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}

		info, err := g.geocodeOne(ctx, norm)
		if err != nil {
			log.Printf("geocode failed postcode=%s err=%v", norm, err)
			continue
		}
		out[norm] = info
	}

	if err := g.store.PutMany(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Geocoder) geocodeOne(ctx context.Context, postcode string) (*PostcodeInfo, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Components: map[maps.Component]string{
			maps.ComponentPostalCode: postcode,
			maps.ComponentCountry:    "GB",
		},
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		// Cache the miss so it is not re-fetched every cycle.
		return &PostcodeInfo{}, nil
	}

	r := results[0]
	lat, lng := coords(r.Geometry.Location.Lat, r.Geometry.Location.Lng)
	return &PostcodeInfo{
		Region: regionFromComponents(r.AddressComponents),
		Lat:    lat,
		Lng:    lng,
	}, nil
}

// regionFromComponents picks the most specific locality-ish component the API
// returned. Preference order follows what UK geocoding responses actually
// carry: postal town, then county, then country subdivision.
func regionFromComponents(components []maps.AddressComponent) string {
	byType := make(map[string]string, len(components))
	for _, c := range components {
		for _, t := range c.Types {
			if _, ok := byType[t]; !ok {
				byType[t] = c.LongName
			}
		}
	}
	for _, t := range []string{"postal_town", "administrative_area_level_2", "administrative_area_level_1"} {
		if v := byType[t]; v != "" {
			return v
		}
	}
	return ""
}
