// README: Static table of UK postcode areas with region names and centroids.
package location

// ukAreas maps a postcode area (the leading letters of the outward code) to
// its region and an approximate centroid. Lookups that hit this table never
// touch the network.
var ukAreas = map[string]PostcodeInfo{
	"AB": area("Aberdeen", 57.1497, -2.0943),
	"B":  area("Birmingham", 52.4862, -1.8904),
	"BA": area("Bath", 51.3811, -2.3590),
	"BB": area("Blackburn", 53.7486, -2.4833),
	"BD": area("Bradford", 53.7960, -1.7594),
	"BH": area("Bournemouth", 50.7192, -1.8808),
	"BL": area("Bolton", 53.5785, -2.4299),
	"BN": area("Brighton", 50.8225, -0.1372),
	"BR": area("Bromley", 51.4059, 0.0146),
	"BS": area("Bristol", 51.4545, -2.5879),
	"CA": area("Carlisle", 54.8925, -2.9329),
	"CB": area("Cambridge", 52.2053, 0.1218),
	"CF": area("Cardiff", 51.4816, -3.1791),
	"CH": area("Chester", 53.1934, -2.8931),
	"CM": area("Chelmsford", 51.7356, 0.4685),
	"CO": area("Colchester", 51.8959, 0.8919),
	"CR": area("Croydon", 51.3762, -0.0982),
	"CT": area("Canterbury", 51.2802, 1.0789),
	"CV": area("Coventry", 52.4068, -1.5197),
	"CW": area("Crewe", 53.0997, -2.4440),
	"DA": area("Dartford", 51.4464, 0.2145),
	"DE": area("Derby", 52.9225, -1.4746),
	"DH": area("Durham", 54.7761, -1.5733),
	"DL": area("Darlington", 54.5253, -1.5585),
	"DN": area("Doncaster", 53.5228, -1.1285),
	"DT": area("Dorchester", 50.7154, -2.4367),
	"DY": area("Dudley", 52.5123, -2.0810),
	"E":  area("East London", 51.5272, 0.0331),
	"EC": area("Central London", 51.5155, -0.0922),
	"EH": area("Edinburgh", 55.9533, -3.1883),
	"EX": area("Exeter", 50.7184, -3.5339),
	"G":  area("Glasgow", 55.8642, -4.2518),
	"GL": area("Gloucester", 51.8642, -2.2382),
	"GU": area("Guildford", 51.2362, -0.5704),
	"HA": area("Harrow", 51.5806, -0.3420),
	"HD": area("Huddersfield", 53.6458, -1.7850),
	"HG": area("Harrogate", 53.9921, -1.5418),
	"HP": area("Hemel Hempstead", 51.7526, -0.4692),
	"HU": area("Hull", 53.7676, -0.3274),
	"IG": area("Ilford", 51.5590, 0.0815),
	"IP": area("Ipswich", 52.0567, 1.1482),
	"KT": area("Kingston upon Thames", 51.4123, -0.3007),
	"L":  area("Liverpool", 53.4084, -2.9916),
	"LA": area("Lancaster", 54.0466, -2.8007),
	"LE": area("Leicester", 52.6369, -1.1398),
	"LN": area("Lincoln", 53.2307, -0.5406),
	"LS": area("Leeds", 53.8008, -1.5491),
	"LU": area("Luton", 51.8787, -0.4200),
	"M":  area("Manchester", 53.4808, -2.2426),
	"ME": area("Medway", 51.3891, 0.5356),
	"MK": area("Milton Keynes", 52.0406, -0.7594),
	"N":  area("North London", 51.5904, -0.1100),
	"NE": area("Newcastle upon Tyne", 54.9783, -1.6178),
	"NG": area("Nottingham", 52.9548, -1.1581),
	"NN": area("Northampton", 52.2405, -0.9027),
	"NR": area("Norwich", 52.6309, 1.2974),
	"NW": area("North West London", 51.5441, -0.1867),
	"OX": area("Oxford", 51.7520, -1.2577),
	"PE": area("Peterborough", 52.5695, -0.2405),
	"PL": area("Plymouth", 50.3755, -4.1427),
	"PO": area("Portsmouth", 50.8198, -1.0880),
	"PR": area("Preston", 53.7632, -2.7031),
	"RG": area("Reading", 51.4543, -0.9781),
	"RH": area("Redhill", 51.2393, -0.1726),
	"S":  area("Sheffield", 53.3811, -1.4701),
	"SE": area("South East London", 51.4724, -0.0610),
	"SG": area("Stevenage", 51.9038, -0.1966),
	"SK": area("Stockport", 53.4106, -2.1575),
	"SL": area("Slough", 51.5105, -0.5950),
	"SN": area("Swindon", 51.5558, -1.7797),
	"SO": area("Southampton", 50.9097, -1.4044),
	"SR": area("Sunderland", 54.9069, -1.3838),
	"SS": area("Southend-on-Sea", 51.5459, 0.7077),
	"ST": area("Stoke-on-Trent", 53.0027, -2.1794),
	"SW": area("South West London", 51.4683, -0.1652),
	"TA": area("Taunton", 51.0150, -3.1065),
	"TN": area("Tonbridge", 51.1324, 0.2637),
	"TR": area("Truro", 50.2632, -5.0510),
	"TS": area("Teesside", 54.5742, -1.2350),
	"W":  area("West London", 51.5142, -0.2147),
	"WA": area("Warrington", 53.3900, -2.5970),
	"WC": area("Central London", 51.5166, -0.1200),
	"WF": area("Wakefield", 53.6833, -1.4977),
	"WN": area("Wigan", 53.5450, -2.6325),
	"WR": area("Worcester", 52.1920, -2.2200),
	"WS": area("Walsall", 52.5862, -1.9829),
	"WV": area("Wolverhampton", 52.5870, -2.1288),
	"YO": area("York", 53.9590, -1.0815),
}

func area(region string, lat, lng float64) PostcodeInfo {
	la, ln := coords(lat, lng)
	return PostcodeInfo{Region: region, Lat: la, Lng: ln}
}
