// Package client is the typed HTTP client for the Divine Darshan REST backend.
//
// A Client resolves its base URL once, runs request decorators (bearer
// token, request id, user agent) before every call and returns non-2xx
// responses as *HTTPError. Transport failures come back as
// *NoResponseError. ErrorMessage turns any of them into a display string:
//
//	resp, err := api.Login(ctx, client.LoginRequest{Identifier: id, Password: pw})
//	if err != nil {
//		fmt.Println(client.ErrorMessage(err))
//	}
package client
