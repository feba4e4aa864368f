package minio

type Option func(*Client)

func WithCredentials(accessKey, secretKey string) Option {
	return func(c *Client) {
		c.accessKey = accessKey
		c.secretKey = secretKey
	}
}

func WithSecure(secure bool) Option {
	return func(c *Client) {
		c.secure = secure
	}
}
