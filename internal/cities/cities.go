// Package cities holds the static Albanian city and route reference data.
package cities

// City is a supported origin/destination.
type City struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	NameSq string  `json:"name_sq"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

// All lists the supported cities. Codes are stable identifiers used in ride
// rows; display names are resolved from here.
var All = []City{
	{Code: "TIA", Name: "Tirana", NameSq: "Tiranë", Lat: 41.3275, Lng: 19.8189},
	{Code: "DUR", Name: "Durrës", NameSq: "Durrës", Lat: 41.3246, Lng: 19.4565},
	{Code: "VLO", Name: "Vlorë", NameSq: "Vlorë", Lat: 40.4660, Lng: 19.4914},
	{Code: "SHK", Name: "Shkodër", NameSq: "Shkodër", Lat: 42.0683, Lng: 19.5126},
	{Code: "ELB", Name: "Elbasan", NameSq: "Elbasan", Lat: 41.1125, Lng: 20.0822},
	{Code: "FIE", Name: "Fier", NameSq: "Fier", Lat: 40.7239, Lng: 19.5569},
	{Code: "KOR", Name: "Korçë", NameSq: "Korçë", Lat: 40.6186, Lng: 20.7808},
	{Code: "BER", Name: "Berat", NameSq: "Berat", Lat: 40.7058, Lng: 19.9522},
	{Code: "LUS", Name: "Lushnjë", NameSq: "Lushnjë", Lat: 40.9419, Lng: 19.7050},
	{Code: "KAV", Name: "Kavajë", NameSq: "Kavajë", Lat: 41.1855, Lng: 19.5569},
	{Code: "POG", Name: "Pogradec", NameSq: "Pogradec", Lat: 40.9025, Lng: 20.6497},
	{Code: "GJI", Name: "Gjirokastër", NameSq: "Gjirokastër", Lat: 40.0758, Lng: 20.1389},
	{Code: "SAR", Name: "Sarandë", NameSq: "Sarandë", Lat: 39.8756, Lng: 20.0047},
	{Code: "LAC", Name: "Laç", NameSq: "Laç", Lat: 41.6356, Lng: 19.7131},
	{Code: "KUK", Name: "Kukës", NameSq: "Kukës", Lat: 42.0769, Lng: 20.4219},
}

// Route is a popular intercity connection shown on the landing page.
type Route struct {
	From       string `json:"from"`
	To         string `json:"to"`
	FromName   string `json:"from_name"`
	ToName     string `json:"to_name"`
	DistanceKm int    `json:"distance_km"`
	DurationMn int    `json:"duration_min"`
}

// PopularRoutes lists the busiest connections.
var PopularRoutes = []Route{
	{From: "TIA", To: "DUR", FromName: "Tirana", ToName: "Durrës", DistanceKm: 39, DurationMn: 40},
	{From: "TIA", To: "VLO", FromName: "Tirana", ToName: "Vlorë", DistanceKm: 147, DurationMn: 150},
	{From: "TIA", To: "SHK", FromName: "Tirana", ToName: "Shkodër", DistanceKm: 116, DurationMn: 120},
	{From: "TIA", To: "ELB", FromName: "Tirana", ToName: "Elbasan", DistanceKm: 45, DurationMn: 50},
	{From: "DUR", To: "VLO", FromName: "Durrës", ToName: "Vlorë", DistanceKm: 118, DurationMn: 120},
}

// QuickMessages are canned chat messages offered in the booking thread.
var QuickMessages = []string{
	"Where are you?",
	"I'm ready",
	"Running 5 minutes late",
	"On my way",
}

var byCode = func() map[string]City {
	m := make(map[string]City, len(All))
	for _, c := range All {
		m[c.Code] = c
	}
	return m
}()

// ByCode looks up a city by its code.
func ByCode(code string) (City, bool) {
	c, ok := byCode[code]
	return c, ok
}

// IsValidCode reports whether code names a supported city.
func IsValidCode(code string) bool {
	_, ok := byCode[code]
	return ok
}

// DisplayName returns the English name for a code, or the code itself when
// unknown (raw codes can still appear in old rows).
func DisplayName(code string) string {
	if c, ok := byCode[code]; ok {
		return c.Name
	}
	return code
}
