package airport

import "github.com/mmeshcher/award-search/internal/model"

// fallbackAirports используется, когда справочник аэропортов не загружен.
var fallbackAirports = []model.AirportRecord{
	{IATA: "JFK", ICAO: "KJFK", Name: "John F. Kennedy International Airport", City: "New York", Country: "US", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 40.6413, Lon: -73.7781}},
	{IATA: "LAX", ICAO: "KLAX", Name: "Los Angeles International Airport", City: "Los Angeles", Country: "US", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 33.9425, Lon: -118.4081}},
	{IATA: "SFO", ICAO: "KSFO", Name: "San Francisco International Airport", City: "San Francisco", Country: "US", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 37.6213, Lon: -122.3790}},
	{IATA: "ORD", ICAO: "KORD", Name: "O'Hare International Airport", City: "Chicago", Country: "US", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 41.9786, Lon: -87.9048}},
	{IATA: "DFW", ICAO: "KDFW", Name: "Dallas/Fort Worth International Airport", City: "Dallas", Country: "US", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 32.8968, Lon: -97.0380}},
	{IATA: "MIA", ICAO: "KMIA", Name: "Miami International Airport", City: "Miami", Country: "US", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 25.7932, Lon: -80.2906}},
	{IATA: "ATL", ICAO: "KATL", Name: "Hartsfield-Jackson Atlanta International Airport", City: "Atlanta", Country: "US", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 33.6367, Lon: -84.4281}},
	{IATA: "SEA", ICAO: "KSEA", Name: "Seattle-Tacoma International Airport", City: "Seattle", Country: "US", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 47.4499, Lon: -122.3117}},
	{IATA: "DEN", ICAO: "KDEN", Name: "Denver International Airport", City: "Denver", Country: "US", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 39.8561, Lon: -104.6737}},
	{IATA: "BOS", ICAO: "KBOS", Name: "Boston Logan International Airport", City: "Boston", Country: "US", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 42.3643, Lon: -71.0052}},
	{IATA: "LAS", ICAO: "KLAS", Name: "Harry Reid International Airport", City: "Las Vegas", Country: "US", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 36.0840, Lon: -115.1537}},
	{IATA: "YYZ", ICAO: "CYYZ", Name: "Toronto Pearson International Airport", City: "Toronto", Country: "CA", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 43.6777, Lon: -79.6248}},
	{IATA: "YVR", ICAO: "CYVR", Name: "Vancouver International Airport", City: "Vancouver", Country: "CA", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 49.1967, Lon: -123.1815}},
	{IATA: "LHR", ICAO: "EGLL", Name: "Heathrow Airport", City: "London", Country: "GB", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 51.4694, Lon: -0.4503}},
	{IATA: "CDG", ICAO: "LFPG", Name: "Charles de Gaulle Airport", City: "Paris", Country: "FR", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 49.0097, Lon: 2.5479}},
	{IATA: "FRA", ICAO: "EDDF", Name: "Frankfurt Airport", City: "Frankfurt", Country: "DE", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 50.0379, Lon: 8.5622}},
	{IATA: "AMS", ICAO: "EHAM", Name: "Amsterdam Airport Schiphol", City: "Amsterdam", Country: "NL", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 52.3086, Lon: 4.7639}},
	{IATA: "FCO", ICAO: "LIRF", Name: "Leonardo da Vinci–Fiumicino Airport", City: "Rome", Country: "IT", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 41.8003, Lon: 12.2389}},
	{IATA: "MAD", ICAO: "LEMD", Name: "Adolfo Suárez Madrid–Barajas Airport", City: "Madrid", Country: "ES", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 40.4983, Lon: -3.5676}},
	{IATA: "BCN", ICAO: "LEBL", Name: "Barcelona–El Prat Airport", City: "Barcelona", Country: "ES", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 41.2971, Lon: 2.0785}},
	{IATA: "IST", ICAO: "LTFM", Name: "Istanbul Airport", City: "Istanbul", Country: "TR", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 41.2753, Lon: 28.7519}},
	{IATA: "ZRH", ICAO: "LSZH", Name: "Zurich Airport", City: "Zurich", Country: "CH", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 47.4647, Lon: 8.5492}},
	{IATA: "HND", ICAO: "RJTT", Name: "Tokyo Haneda Airport", City: "Tokyo", Country: "JP", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 35.5533, Lon: 139.7811}},
	{IATA: "NRT", ICAO: "RJAA", Name: "Narita International Airport", City: "Tokyo", Country: "JP", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 35.7719, Lon: 140.3928}},
	{IATA: "PEK", ICAO: "ZBAA", Name: "Beijing Capital International Airport", City: "Beijing", Country: "CN", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 40.0799, Lon: 116.6031}},
	{IATA: "PVG", ICAO: "ZSPD", Name: "Shanghai Pudong International Airport", City: "Shanghai", Country: "CN", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 31.1443, Lon: 121.8083}},
	{IATA: "HKG", ICAO: "VHHH", Name: "Hong Kong International Airport", City: "Hong Kong", Country: "HK", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 22.3080, Lon: 113.9185}},
	{IATA: "ICN", ICAO: "RKSI", Name: "Incheon International Airport", City: "Seoul", Country: "KR", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 37.4602, Lon: 126.4407}},
	{IATA: "SIN", ICAO: "WSSS", Name: "Singapore Changi Airport", City: "Singapore", Country: "SG", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 1.3644, Lon: 103.9915}},
	{IATA: "BKK", ICAO: "VTBS", Name: "Suvarnabhumi Airport", City: "Bangkok", Country: "TH", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 13.6900, Lon: 100.7501}},
	{IATA: "DEL", ICAO: "VIDP", Name: "Indira Gandhi International Airport", City: "New Delhi", Country: "IN", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 28.5562, Lon: 77.1000}},
	{IATA: "BOM", ICAO: "VABB", Name: "Chhatrapati Shivaji Maharaj International Airport", City: "Mumbai", Country: "IN", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 19.0896, Lon: 72.8656}},
	{IATA: "DXB", ICAO: "OMDB", Name: "Dubai International Airport", City: "Dubai", Country: "AE", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 25.2528, Lon: 55.3644}},
	{IATA: "AUH", ICAO: "OMAA", Name: "Abu Dhabi International Airport", City: "Abu Dhabi", Country: "AE", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 24.4330, Lon: 54.6511}},
	{IATA: "DOH", ICAO: "OTHH", Name: "Hamad International Airport", City: "Doha", Country: "QA", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 25.2609, Lon: 51.6138}},
	{IATA: "SYD", ICAO: "YSSY", Name: "Sydney Kingsford Smith Airport", City: "Sydney", Country: "AU", Type: "large_airport", Coordinates: &model.Coordinates{Lat: -33.9399, Lon: 151.1753}},
	{IATA: "MEL", ICAO: "YMML", Name: "Melbourne Airport", City: "Melbourne", Country: "AU", Type: "large_airport", Coordinates: &model.Coordinates{Lat: -37.6690, Lon: 144.8410}},
	{IATA: "AKL", ICAO: "NZAA", Name: "Auckland Airport", City: "Auckland", Country: "NZ", Type: "large_airport", Coordinates: &model.Coordinates{Lat: -37.0082, Lon: 174.7850}},
	{IATA: "GRU", ICAO: "SBGR", Name: "São Paulo–Guarulhos International Airport", City: "São Paulo", Country: "BR", Type: "large_airport", Coordinates: &model.Coordinates{Lat: -23.4356, Lon: -46.4731}},
	{IATA: "EZE", ICAO: "SAEZ", Name: "Ministro Pistarini International Airport", City: "Buenos Aires", Country: "AR", Type: "large_airport", Coordinates: &model.Coordinates{Lat: -34.8222, Lon: -58.5358}},
	{IATA: "BOG", ICAO: "SKBO", Name: "El Dorado International Airport", City: "Bogotá", Country: "CO", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 4.7016, Lon: -74.1469}},
	{IATA: "SCL", ICAO: "SCEL", Name: "Santiago International Airport", City: "Santiago", Country: "CL", Type: "large_airport", Coordinates: &model.Coordinates{Lat: -33.3928, Lon: -70.7952}},
	{IATA: "JNB", ICAO: "FAOR", Name: "O. R. Tambo International Airport", City: "Johannesburg", Country: "ZA", Type: "large_airport", Coordinates: &model.Coordinates{Lat: -26.1392, Lon: 28.2461}},
	{IATA: "CAI", ICAO: "HECA", Name: "Cairo International Airport", City: "Cairo", Country: "EG", Type: "large_airport", Coordinates: &model.Coordinates{Lat: 30.1219, Lon: 31.4056}},
	{IATA: "CPT", ICAO: "FACT", Name: "Cape Town International Airport", City: "Cape Town", Country: "ZA", Type: "large_airport", Coordinates: &model.Coordinates{Lat: -33.9649, Lon: 18.6027}},
}

// Fallback возвращает копию встроенного списка крупных аэропортов.
func Fallback() []model.AirportRecord {
	res := make([]model.AirportRecord, len(fallbackAirports))
	copy(res, fallbackAirports)
	return res
}
