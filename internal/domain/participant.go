package domain

// Participant is a Route-level roster entry: either a client or a
// guide (staff member), never both.
type Participant struct {
	ID         string  `json:"id"`
	RouteID    string  `json:"routeId"`
	ClientID   *string `json:"clientId"`
	GuideID    *string `json:"guideId"`
	Role       *string `json:"role"`
	IsOptional bool    `json:"isOptional"`
	Notes      *string `json:"notes"`
	ClientName *string `json:"clientName,omitempty"`
	GuideName  *string `json:"guideName,omitempty"`
}

func (p *Participant) Validate() error {
	hasClient := p.ClientID != nil && *p.ClientID != ""
	hasGuide := p.GuideID != nil && *p.GuideID != ""
	if hasClient && hasGuide {
		return Invalidf("Cannot assign both a client and a guide to one participant")
	}
	if !hasClient && !hasGuide {
		return Invalidf("Either clientId or guideId must be set")
	}
	return nil
}
