package httpclient_test

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/MacarenaGarciaM/Tingeso1/httpclient"
	"github.com/MacarenaGarciaM/Tingeso1/session"
)

// Example demonstrates basic client usage with a Keycloak session.
func Example() {
	kc := session.NewKeycloak()
	kc.SetToken("access-token")

	client, err := httpclient.NewBuilder().
		WithBaseURL("http://localhost:8090").
		WithSession(kc).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Client for %s with timeout %v\n", client.BaseURL(), client.HTTPClient().Timeout)
	// Output: Client for http://localhost:8090 with timeout 30s
}

// ExampleNewHTTPClient demonstrates wrapping a plain http.Client.
func ExampleNewHTTPClient() {
	client := httpclient.NewHTTPClient(session.Static("access-token"))

	fmt.Printf("Client timeout: %v\n", client.Timeout)
	// Output: Client timeout: 30s
}

// ExampleBuilder_WithTimeout demonstrates timeout configuration.
func ExampleBuilder_WithTimeout() {
	client, err := httpclient.NewBuilder().
		WithBaseURL("https://api.example.com").
		WithTimeout(45 * time.Second).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Timeout: %v\n", client.HTTPClient().Timeout)
	// Output: Timeout: 45s
}

// ExampleBuilder_WithTLS demonstrates TLS configuration.
func ExampleBuilder_WithTLS() {
	_, err := httpclient.NewBuilder().
		WithBaseURL("https://api.example.com").
		WithTLS(
			"/path/to/ca.crt",     // CA certificate
			"/path/to/client.crt", // Client certificate (optional)
			"/path/to/client.key", // Client key (optional)
		).
		Build()
	if err != nil {
		// In this example, files don't exist, so we expect an error
		fmt.Println("TLS configuration attempted")
		return
	}

	fmt.Println("TLS configured")
	// Output: TLS configuration attempted
}

// ExampleBuilder_WithInterceptor demonstrates adding a custom request interceptor.
func ExampleBuilder_WithInterceptor() {
	client, err := httpclient.NewBuilder().
		WithBaseURL("https://api.example.com").
		WithInterceptor(func(req *http.Request) error {
			req.Header.Set("Accept-Language", "es-CL")
			return nil
		}).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Interceptor registered")
	_ = client
	// Output: Interceptor registered
}

// ExampleClient_ResolveURL demonstrates how request paths are joined to the base URL.
func ExampleClient_ResolveURL() {
	client, err := httpclient.NewBuilder().
		WithBaseURL("https://api.example.com/v1").
		Build()
	if err != nil {
		log.Fatal(err)
	}

	u, _ := client.ResolveURL("/tools?status=available")
	fmt.Println(u)
	// Output: https://api.example.com/v1/tools?status=available
}

// ExampleNewBearerTransport demonstrates creating a custom transport.
func ExampleNewBearerTransport() {
	transport := httpclient.NewBearerTransport(session.Static("access-token"), nil)

	client := &http.Client{Transport: transport}

	fmt.Println("Transport type: BearerTransport")
	_ = client
	// Output: Transport type: BearerTransport
}
