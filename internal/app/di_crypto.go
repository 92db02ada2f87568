package app

import (
	cryptoService "github.com/allisson/secure-transmission/internal/crypto/service"
)

// AsymmetricCipher returns the SM2 cipher.
func (c *Container) AsymmetricCipher() cryptoService.AsymmetricCipher {
	c.asymmetricCipherInit.Do(func() {
		c.asymmetricCipher = cryptoService.NewSM2Cipher()
	})
	return c.asymmetricCipher
}

// SymmetricCipher returns the SM4 cipher.
func (c *Container) SymmetricCipher() cryptoService.SymmetricCipher {
	c.symmetricCipherInit.Do(func() {
		c.symmetricCipher = cryptoService.NewSM4Cipher()
	})
	return c.symmetricCipher
}

// Hasher returns the SM3 hasher used for ciphertext digests in logs.
func (c *Container) Hasher() cryptoService.Hasher {
	c.hasherInit.Do(func() {
		c.hasher = cryptoService.NewSM3Hasher()
	})
	return c.hasher
}

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}
