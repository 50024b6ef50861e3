package apikeys

import "golang.org/x/oauth2"

// TokenSource returns an oauth2.TokenSource that serves a key for role and
// mints a new one once the cached key is about to expire.
func (m *Minter) TokenSource(role string) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &keySource{minter: m, role: role})
}

type keySource struct {
	minter *Minter
	role   string
}

func (s *keySource) Token() (*oauth2.Token, error) {
	now := s.minter.cfg.Now()
	key, err := s.minter.MintAt(s.role, now)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken: key,
		TokenType:   "Bearer",
		Expiry:      s.minter.Claims(s.role, now).ExpiresAt,
	}, nil
}
