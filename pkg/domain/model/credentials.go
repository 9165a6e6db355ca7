package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
)

// Credentials authenticate clone and push against the source repository
type Credentials struct {
	Account string
	Token   string `masq:"secret"`
}

// Validate fails with a configuration error when either value is absent
func (c Credentials) Validate() error {
	if c.Account == "" || c.Token == "" {
		return goerr.New("missing repository owner and access token",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("account_set", c.Account != ""),
			goerr.V("token_set", c.Token != ""),
		)
	}
	return nil
}
