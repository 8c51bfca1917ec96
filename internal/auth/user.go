// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
Package auth implements the user directory behind the identity boundary.

Lectern never stores credentials: an external provider authenticates the
person and hands over a verified identity token. This package maps that
identity to an internal account, provisioning one on first sight, and
answers the role questions the middleware asks on every protected request.
*/
package auth

import (
	"time"

	"github.com/hanvu/lectern/internal/platform/sec"
)

// # Account Status

// Status is the directory account state. Unlike content there is no public
// exposure; accounts are active or disabled by operations.
type Status string

const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

// # Core Entity

// User is an internal directory account backed by an external identity.
type User struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	UserName     string `json:"userName"`
	PictureURL   string `json:"pictureURL"`
	EmailAddress string `json:"emailAddress"`

	// EmailVerified moves false to true only; a later unverified sign-in
	// never demotes it.
	EmailVerified bool `json:"emailVerified"`

	Roles sec.Roles `json:"roles"`
	About string    `json:"about"`

	// Language preferences drive catalog filtering on the client.
	ContentLanguageCodes []string `json:"contentLanguageCodes"`
	DisplayLanguageCode  string   `json:"displayLanguageCode"`

	Status Status `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Claims projects the account onto the slim shape the middleware carries in
// the request context.
func (user *User) Claims() *sec.UserClaims {
	return &sec.UserClaims{
		UserID:       user.ID,
		EmailAddress: user.EmailAddress,
		Roles:        user.Roles,
	}
}

// Update carries a self-service profile modification. Email, roles, and
// status are never writable through this path.
type Update struct {
	FirstName            *string
	LastName             *string
	UserName             *string
	PictureURL           *string
	About                *string
	ContentLanguageCodes *[]string
	DisplayLanguageCode  *string
}

// # Field Identifiers

const (
	FieldFirstName            = "firstName"
	FieldLastName             = "lastName"
	FieldUserName             = "userName"
	FieldPictureURL           = "pictureURL"
	FieldAbout                = "about"
	FieldContentLanguageCodes = "contentLanguageCodes"
	FieldDisplayLanguageCode  = "displayLanguageCode"
)
