// Package jwt provides JSON Web Token utilities for the Mandalateu API.
//
// The jwt package handles access token signing, validation, and claims
// extraction for authentication. Tokens are RS256 signed.
//
// # Token Signing
//
// Sign tokens for authenticated users:
//
//	service, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "keys/private.pem",
//	    Issuer:         "mandalateu-api",
//	    ExpirationMins: 15,
//	})
//
//	token, err := service.Sign(jwt.Claims{
//	    Subject: userID,
//	    UserID:  userID,
//	    Email:   email,
//	})
//
// # Token Validation
//
// Validate and extract claims:
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // Invalid or expired token
//	}
//	userID := claims.UserID
//
// Servers that only validate tokens can be configured with just a
// public key via Config.PublicKeyPath.
package jwt
