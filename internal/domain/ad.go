package domain

// AdPosition is the placement kind of an ad slot.
type AdPosition string

const (
	AdPositionTop          AdPosition = "top"
	AdPositionMiddle       AdPosition = "middle"
	AdPositionBottom       AdPosition = "bottom"
	AdPositionInterstitial AdPosition = "interstitial"
	AdPositionPopunder     AdPosition = "popunder"
)

// AdConfig is one ad slot definition. The set of slot ids is fixed by the seed;
// admins only flip Enabled or replace Code.
type AdConfig struct {
	ID       string     `json:"id" validate:"required"`
	Name     string     `json:"name"`
	Enabled  bool       `json:"enabled"`
	Code     string     `json:"code"`
	Position AdPosition `json:"position" validate:"oneof=top middle bottom interstitial popunder"`
}

// FindAd returns the index of the slot with id, or -1.
func FindAd(ads []AdConfig, id string) int {
	for i := range ads {
		if ads[i].ID == id {
			return i
		}
	}
	return -1
}

// EnabledAt returns the enabled slot for a position, if any.
func EnabledAt(ads []AdConfig, pos AdPosition) (AdConfig, bool) {
	for _, a := range ads {
		if a.Position == pos && a.Enabled {
			return a, true
		}
	}
	return AdConfig{}, false
}
