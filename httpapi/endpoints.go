package httpapi

// Well-known browse surfaces.
const (
	BrowseHome           = "FEmusic_home"
	BrowseExplore        = "FEmusic_explore"
	BrowseCharts         = "FEmusic_charts"
	BrowseLibraryLanding = "FEmusic_library_landing"
	BrowseLikedPlaylists = "FEmusic_liked_playlists"
	BrowseMoodsAndGenres = "FEmusic_moods_and_genres"
)
