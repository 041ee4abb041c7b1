package seed

// City rows give seeded campgrounds plausible locations and map points.
type City struct {
	Name      string
	State     string
	Longitude float64
	Latitude  float64
}

var Cities = []City{
	{"Seattle", "Washington", -122.3321, 47.6062},
	{"Portland", "Oregon", -122.6765, 45.5231},
	{"San Francisco", "California", -122.4194, 37.7749},
	{"Los Angeles", "California", -118.2437, 34.0522},
	{"San Diego", "California", -117.1611, 32.7157},
	{"Phoenix", "Arizona", -112.0740, 33.4484},
	{"Denver", "Colorado", -104.9903, 39.7392},
	{"Boulder", "Colorado", -105.2705, 40.0150},
	{"Salt Lake City", "Utah", -111.8910, 40.7608},
	{"Boise", "Idaho", -116.2023, 43.6150},
	{"Missoula", "Montana", -113.9940, 46.8721},
	{"Albuquerque", "New Mexico", -106.6504, 35.0844},
	{"Austin", "Texas", -97.7431, 30.2672},
	{"Dallas", "Texas", -96.7970, 32.7767},
	{"Oklahoma City", "Oklahoma", -97.5164, 35.4676},
	{"Kansas City", "Missouri", -94.5786, 39.0997},
	{"Minneapolis", "Minnesota", -93.2650, 44.9778},
	{"Madison", "Wisconsin", -89.4012, 43.0731},
	{"Chicago", "Illinois", -87.6298, 41.8781},
	{"Nashville", "Tennessee", -86.7816, 36.1627},
	{"Asheville", "North Carolina", -82.5515, 35.5951},
	{"Atlanta", "Georgia", -84.3880, 33.7490},
	{"Orlando", "Florida", -81.3792, 28.5383},
	{"Richmond", "Virginia", -77.4360, 37.5407},
	{"Pittsburgh", "Pennsylvania", -79.9959, 40.4406},
	{"Buffalo", "New York", -78.8784, 42.8864},
	{"Burlington", "Vermont", -73.2121, 44.4759},
	{"Portland", "Maine", -70.2553, 43.6591},
	{"Anchorage", "Alaska", -149.9003, 61.2181},
	{"Honolulu", "Hawaii", -157.8583, 21.3069},
}

// Descriptors and Places combine into seeded campground titles.
var Descriptors = []string{
	"Forest", "Ancient", "Petrified", "Roaring", "Cascade", "Tumbling",
	"Silent", "Redwood", "Bullfrog", "Maple", "Misty", "Elk", "Grizzly",
	"Ocean", "Sky", "Dusty", "Diamond",
}

var Places = []string{
	"Flats", "Village", "Canyon", "Pond", "Group Camp", "Horse Camp",
	"Ghost Town", "Camp", "Dispersed Camp", "Backcountry", "River",
	"Creek", "Creekside", "Bay", "Spring", "Bayshore", "Sands", "Mule Camp",
	"Hunting Camp", "Cliffs", "Hollow",
}

// seedDescription mirrors the placeholder copy seeded listings carry.
const seedDescription = "Lorem ipsum dolor, sit amet consectetur adipisicing elit. " +
	"Vero ullam, doloribus quos maiores assumenda dolorum animi accusantium facere, " +
	"quisquam odio dicta laudantium eligendi."

// seedImageURL is a stock photo within the CSP image allow-list.
const seedImageURL = "https://images.unsplash.com/photo-1504280390367-361c6d9f38f4?w=800"
