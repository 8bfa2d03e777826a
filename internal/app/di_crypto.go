package app

import (
	"sync"

	cryptoService "github.com/allisson/onetime/internal/crypto/service"
)

// cryptoComponents holds the stateless cryptographic services.
type cryptoComponents struct {
	keyDeriver     cryptoService.KeyDeriver
	nonceGenerator cryptoService.NonceGenerator
	aeadManager    cryptoService.AEADManager

	keyDeriverInit     sync.Once
	nonceGeneratorInit sync.Once
	aeadManagerInit    sync.Once
}

// KeyDeriver returns the password key deriver (Argon2id with fixed parameters),
// limited to KDFMaxConcurrency derivations at once.
func (c *Container) KeyDeriver() cryptoService.KeyDeriver {
	c.keyDeriverInit.Do(func() {
		c.keyDeriver = cryptoService.NewLimitedKeyDeriver(
			cryptoService.NewArgon2KeyDeriver(),
			c.config.KDFMaxConcurrency,
		)
	})
	return c.keyDeriver
}

// NonceGenerator returns the nonce generator backed by crypto/rand.
func (c *Container) NonceGenerator() cryptoService.NonceGenerator {
	c.nonceGeneratorInit.Do(func() {
		c.nonceGenerator = cryptoService.NewRandomNonceGenerator()
	})
	return c.nonceGenerator
}

// AEADManager returns the AEAD cipher factory.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}
