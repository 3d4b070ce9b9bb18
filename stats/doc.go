// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stats fetches public channel statistics for the mixer footer.

# Upstream

Client calls the YouTube Data API v3 channels endpoint with
part=statistics,snippet. The API key stays server side; a Client without a key
fails every fetch with ErrMissingAPIKey. Non-2xx answers surface as
*UpstreamError carrying the upstream status and body. Concurrent fetches for
the same channel share one request via singleflight.

# Proxy

ProxyClient reads the same envelope from a running server's
/api/youtube-subs endpoint. Both clients satisfy Fetcher.

# Badge

Badge performs one fetch per lifetime and keeps the result only while it is
alive:

	b := stats.NewBadge(ctx, client, channelID)
	defer b.Close()
	r, _ := b.Wait(ctx)
	fmt.Println(r.Text())

A failed fetch yields a Reading with Available false.
*/
package stats
