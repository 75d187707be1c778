package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fromHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err, "bad input data")
	return b
}

func keyFromHex(t *testing.T, s string) (k Key) {
	t.Helper()
	b := fromHex(t, s)
	require.Len(t, b, KeySize)
	copy(k[:], b)
	return
}

func TestEncryptWithAd(t *testing.T) {
	key := keyFromHex(t, "e68f69b7f096d7917245f5e5cf8ae1595febe4d4644333c99f9c4a1282031c9f")
	ad := fromHex(t, "9e0e7de8bb75554f21db034633de04be41a2b8a18da7a319a03c803bf02b396c")

	c, err := EncryptWithAd(key, 0, ad, nil)
	require.NoError(t, err)
	assert.Equal(t, "0df6086551151f58b8afe6c195782c6a", hex.EncodeToString(c))
}

func TestDecryptWithAd(t *testing.T) {
	key := keyFromHex(t, "908b166535c01a935cf1e130a5fe895ab4e6f3ef8855d87e9b7581c4ab663ddc")
	ad := fromHex(t, "38122f669819f906000621a14071802f93f2ef97df100097bcac3ae76c6dc0bf")
	c := fromHex(t, "6e2470b93aac583c9ef6eafca3f730ae")

	p, err := DecryptWithAd(key, 0, ad, c)
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestAeadRoundTrip(t *testing.T) {
	testCases := []struct {
		desc      string
		counter   uint64
		ad        []byte
		plaintext []byte
	}{
		{desc: "empty", counter: 0},
		{desc: "short with ad", counter: 1, ad: []byte("lightning"), plaintext: []byte("hello")},
		{desc: "large counter", counter: 1<<64 - 1, ad: bytes.Repeat([]byte{0xaa}, 32), plaintext: bytes.Repeat([]byte{7}, 1000)},
		{desc: "max frame", counter: 42, plaintext: bytes.Repeat([]byte{1}, 65535)},
	}
	var key Key
	copy(key[:], bytes.Repeat([]byte{0x42}, KeySize))

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			c, err := EncryptWithAd(key, tC.counter, tC.ad, tC.plaintext)
			require.NoError(t, err)
			require.Len(t, c, len(tC.plaintext)+TagSize)

			p, err := DecryptWithAd(key, tC.counter, tC.ad, c)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(tC.plaintext, p))
		})
	}
}

func TestDecryptTampered(t *testing.T) {
	var key Key
	copy(key[:], bytes.Repeat([]byte{0x42}, KeySize))
	ad := []byte("associated")
	plaintext := []byte("attack at dawn")

	c, err := EncryptWithAd(key, 5, ad, plaintext)
	require.NoError(t, err)

	t.Run("ciphertext and tag bits", func(t *testing.T) {
		for i := 0; i < len(c)*8; i++ {
			tampered := append([]byte(nil), c...)
			tampered[i/8] ^= 1 << (i % 8)
			_, err := DecryptWithAd(key, 5, ad, tampered)
			require.ErrorIs(t, err, ErrDecrypt, "bit %d", i)
		}
	})
	t.Run("ad", func(t *testing.T) {
		_, err := DecryptWithAd(key, 5, []byte("associatee"), c)
		assert.ErrorIs(t, err, ErrDecrypt)
	})
	t.Run("counter", func(t *testing.T) {
		_, err := DecryptWithAd(key, 4, ad, c)
		assert.ErrorIs(t, err, ErrDecrypt)
		_, err = DecryptWithAd(key, 6, ad, c)
		assert.ErrorIs(t, err, ErrDecrypt)
	})
	t.Run("key", func(t *testing.T) {
		other := key
		other[0] ^= 1
		_, err := DecryptWithAd(other, 5, ad, c)
		assert.ErrorIs(t, err, ErrDecrypt)
	})
	t.Run("truncated", func(t *testing.T) {
		_, err := DecryptWithAd(key, 5, ad, c[:TagSize-1])
		assert.True(t, errors.Is(err, ErrDecrypt))
	})
}

func TestHKDF(t *testing.T) {
	salt := keyFromHex(t, "2640f52eebcd9e882958951c794250eedb28002c05d7dc2ea0f195406042caf1")
	ikm := fromHex(t, "1e2fb3c8fe8fb9f262f649f64d26ecf0f2c0a805a767cf02dc2d77a6ef1fdcc3")

	ck, k := HKDF(salt, ikm)
	assert.Equal(t, "b61ec1191326fa240decc9564369dbb3ae2b34341d1e11ad64ed89f89180582f", hex.EncodeToString(ck[:]))
	assert.Equal(t, "e68f69b7f096d7917245f5e5cf8ae1595febe4d4644333c99f9c4a1282031c9f", hex.EncodeToString(k[:]))

	ck2, k2 := HKDF(salt, ikm)
	assert.Equal(t, ck, ck2)
	assert.Equal(t, k, k2)

	ikm[0] ^= 1
	ck3, k3 := HKDF(salt, ikm)
	assert.NotEqual(t, ck, ck3)
	assert.NotEqual(t, k, k3)

	// session keys are derived with empty input key material
	final := keyFromHex(t, "919219dbb2920afa8db80f9a51787a840bcf111ed8d588caf9ab4be716e42b01")
	sk, rk := HKDF(final, nil)
	assert.Equal(t, "969ab31b4d288cedf6218839b27a3e2140827047f2c0f01bf5c04435d43511a9", hex.EncodeToString(sk[:]))
	assert.Equal(t, "bb9020b8965f4df047e07f955f3c4b88418984aadc5cdb35096b9ea8fa5c3442", hex.EncodeToString(rk[:]))
}

func TestECDH(t *testing.T) {
	pub, err := ParsePubkey(fromHex(t, "028d7500dd4c12685d1f568b4c2b5048e8534b873319f3a8daa612b469132ec7f7"))
	require.NoError(t, err)
	priv, err := ParsePrivkey(bytes.Repeat([]byte{0x12}, PrivkeySize))
	require.NoError(t, err)

	ss := ECDH(pub, priv)
	assert.Equal(t, "1e2fb3c8fe8fb9f262f649f64d26ecf0f2c0a805a767cf02dc2d77a6ef1fdcc3", hex.EncodeToString(ss[:]))

	// both sides of the exchange agree
	other, err := ParsePrivkey(bytes.Repeat([]byte{0x21}, PrivkeySize))
	require.NoError(t, err)
	assert.Equal(t, ECDH(other.PubKey(), priv), ECDH(priv.PubKey(), other))
}

func TestTranscript(t *testing.T) {
	var h Transcript
	assert.Equal(t, [HashSize]byte{}, h.Bytes())

	h.Initialize([]byte("Noise_XK_secp256k1_ChaChaPoly_SHA256"))
	seeded := h.Bytes()
	assert.Equal(t, "2640f52eebcd9e882958951c794250eedb28002c05d7dc2ea0f195406042caf1", hex.EncodeToString(seeded[:]))

	h.Update([]byte("lightning"))
	h.Update(fromHex(t, "028d7500dd4c12685d1f568b4c2b5048e8534b873319f3a8daa612b469132ec7f7"))
	got := h.Bytes()
	assert.Equal(t, "8401b3fdcaaa710b5405400536a3d5fd7792fe8e7fe29cd8b687216fe323ecbd", hex.EncodeToString(got[:]))
	assert.Equal(t, got, h.Bytes(), "reading must not mutate")

	h.Update(fromHex(t, "036360e856310ce5d294e8be33fc807077dc56ac80d95d9cd4ddbd21325eff73f7"))
	got = h.Bytes()
	assert.Equal(t, "9e0e7de8bb75554f21db034633de04be41a2b8a18da7a319a03c803bf02b396c", hex.EncodeToString(got[:]))

	h.Reset()
	assert.Equal(t, [HashSize]byte{}, h.Bytes())
}

func TestTranscriptOrder(t *testing.T) {
	a, b := []byte("a"), []byte("b")
	var ab, ba Transcript
	ab.Update(a)
	ab.Update(b)
	ba.Update(b)
	ba.Update(a)
	assert.NotEqual(t, ab.Bytes(), ba.Bytes())
}

func TestParsePubkey(t *testing.T) {
	testCases := []struct {
		desc  string
		input string
		valid bool
	}{
		{desc: "even y", input: "028d7500dd4c12685d1f568b4c2b5048e8534b873319f3a8daa612b469132ec7f7", valid: true},
		{desc: "odd y", input: "034f355bdcb7cc0af728ef3cceb9615d90684bb5b2ca5f859ab0f0b704075871aa", valid: true},
		{desc: "bad prefix", input: "048d7500dd4c12685d1f568b4c2b5048e8534b873319f3a8daa612b469132ec7f7"},
		{desc: "x not on curve", input: "020000000000000000000000000000000000000000000000000000000000000005"},
		{desc: "too short", input: "028d7500dd4c12685d1f568b4c2b5048e8534b873319f3a8daa612b469132ec7"},
		{desc: "empty", input: ""},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			pub, err := ParsePubkey(fromHex(t, tC.input))
			if !tC.valid {
				assert.ErrorIs(t, err, ErrPubkey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tC.input, hex.EncodeToString(pub.SerializeCompressed()))
		})
	}
}

func TestParsePrivkey(t *testing.T) {
	priv, err := ParsePrivkey(bytes.Repeat([]byte{0x11}, PrivkeySize))
	require.NoError(t, err)
	assert.Equal(t, "034f355bdcb7cc0af728ef3cceb9615d90684bb5b2ca5f859ab0f0b704075871aa",
		hex.EncodeToString(priv.PubKey().SerializeCompressed()))

	_, err = ParsePrivkey(make([]byte, PrivkeySize))
	assert.ErrorIs(t, err, ErrPrivkey)
	_, err = ParsePrivkey(bytes.Repeat([]byte{0xff}, PrivkeySize))
	assert.ErrorIs(t, err, ErrPrivkey)
	_, err = ParsePrivkey(make([]byte, 31))
	assert.ErrorIs(t, err, ErrKeysize)
}

func TestGenPrivkey(t *testing.T) {
	t.Run("deterministic source", func(t *testing.T) {
		priv, err := GenPrivkey(bytes.NewReader(bytes.Repeat([]byte{0x12}, PrivkeySize)))
		require.NoError(t, err)
		assert.Equal(t, "036360e856310ce5d294e8be33fc807077dc56ac80d95d9cd4ddbd21325eff73f7",
			hex.EncodeToString(priv.PubKey().SerializeCompressed()))
	})
	t.Run("skips invalid scalars", func(t *testing.T) {
		src := append(make([]byte, PrivkeySize), bytes.Repeat([]byte{0xff}, PrivkeySize)...)
		src = append(src, bytes.Repeat([]byte{0x11}, PrivkeySize)...)
		priv, err := GenPrivkey(bytes.NewReader(src))
		require.NoError(t, err)
		assert.Equal(t, bytes.Repeat([]byte{0x11}, PrivkeySize), priv.Serialize())
	})
	t.Run("short source", func(t *testing.T) {
		_, err := GenPrivkey(bytes.NewReader([]byte{1, 2, 3}))
		assert.Error(t, err)
	})
}

func TestZeroBytes(t *testing.T) {
	a := []byte{1, 2, 3}
	k := Key{9, 9}
	ZeroBytes(a, k[:])
	assert.Equal(t, []byte{0, 0, 0}, a)
	assert.Equal(t, Key{}, k)
}
