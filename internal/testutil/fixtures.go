// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"
)

// TestObjectSchema is an object schema with two required fields and one
// optional field.
const TestObjectSchema = `
type: object
required:
  - id
  - name
properties:
  id:
    type: integer
  name:
    type: string
  valid:
    type: boolean
`

// PetstoreSwagger is a reduced Swagger 2.0 petstore covering every
// parameter location, nested references and format constraints.
const PetstoreSwagger = `
swagger: "2.0"
info:
  title: Petstore
  version: "1.0.0"
paths:
  /pet:
    post:
      operationId: addPet
      parameters:
        - in: body
          name: body
          required: true
          schema:
            $ref: "#/definitions/Pet"
  /pet/findByStatus:
    get:
      operationId: findPetsByStatus
      parameters:
        - name: status
          in: query
          required: true
          type: string
          enum: [available, pending, sold]
        - name: limit
          in: query
          type: integer
          minimum: 1
          maximum: 100
  /pet/{petId}:
    parameters:
      - name: petId
        in: path
        required: true
        type: integer
        minimum: 1
    get:
      operationId: getPetById
    delete:
      operationId: deletePet
      parameters:
        - name: api_key
          in: header
          required: true
          type: string
    post:
      operationId: updatePetWithForm
      parameters:
        - name: name
          in: formData
          type: string
        - name: vaccinated
          in: formData
          type: boolean
  /store/order/{orderId}:
    get:
      operationId: getOrderById
      parameters:
        - name: orderId
          in: path
          required: true
          type: integer
          minimum: 1
          maximum: 10
  /user/{username}:
    get:
      operationId: getUserByName
      parameters:
        - name: username
          in: path
          required: true
          type: string
  /user/login:
    get:
      operationId: loginUser
  /network/{addr}/ping:
    get:
      operationId: ping
      parameters:
        - name: addr
          in: path
          required: true
          type: string
          format: ipv4
definitions:
  Category:
    type: object
    properties:
      id:
        type: integer
      name:
        type: string
  Tag:
    type: object
    properties:
      id:
        type: integer
      name:
        type: string
  Pet:
    type: object
    required:
      - name
      - photoUrls
    properties:
      id:
        type: integer
      category:
        $ref: "#/definitions/Category"
      name:
        type: string
      photoUrls:
        type: array
        items:
          type: string
      tags:
        type: array
        items:
          $ref: "#/definitions/Tag"
      status:
        type: string
        description: pet status in the store
        enum:
          - available
          - pending
          - sold
  Node:
    type: object
    required: [value]
    properties:
      value:
        type: integer
      next:
        $ref: "#/definitions/Node"
`

// MustNode parses YAML (or JSON) text into a document node.
func MustNode(t testing.TB, src string) *yaml.Node {
	t.Helper()

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(src), &node); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}
	return &node
}

// WriteTempFile writes content to name inside a per-test temporary directory.
// Returns the path to the file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempFile(t testing.TB, name, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}

	return tmpFile
}
