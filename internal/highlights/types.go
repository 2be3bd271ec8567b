package highlights

type summaryResponse struct {
	Videos []video `json:"videos"`
}

type video struct {
	Headline            string     `json:"headline"`
	OriginalPublishDate string     `json:"originalPublishDate"`
	Links               videoLinks `json:"links"`
}

type videoLinks struct {
	Source struct {
		HD struct {
			Href string `json:"href"`
		} `json:"HD"`
	} `json:"source"`
}
