package feeds

import "yatube/storage/models"

// Listing is what every post listing renders: one page of posts plus the
// group or author the listing is about.
type Listing struct {
	Page      Page[models.Post]
	Group     *models.Group
	Author    *models.User
	Following bool
}
