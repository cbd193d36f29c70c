// Package storage provides the object storage client used to verify public
// media assets.
//
// It wraps the Minio SDK behind a small read-only interface so features can
// be tested against the mock client in the mocks subpackage. The pipeline
// itself never writes to storage: media files are deployed out of band, and
// this service only checks that icon paths recorded in the relational store
// resolve to real objects.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err != nil {
//	    log.Fatal("Storage client failed", err)
//	}
//
//	_, err = client.StatObject(ctx, cfg.Storage.Bucket, "UI/Images/T_UI_Helmet.png", minio.StatObjectOptions{})
package storage
