package api

import "net/http"

// graphiqlPage is a minimal GraphiQL shell pointed at /graphql, with the
// websocket transport enabled so bookAdded subscriptions work from the IDE.
const graphiqlPage = `<!DOCTYPE html>
<html>
  <head>
    <title>Libris GraphQL</title>
    <link rel="stylesheet" href="https://unpkg.com/graphiql/graphiql.min.css" />
  </head>
  <body style="margin:0">
    <div id="graphiql" style="height:100vh"></div>
    <script crossorigin src="https://unpkg.com/react/umd/react.production.min.js"></script>
    <script crossorigin src="https://unpkg.com/react-dom/umd/react-dom.production.min.js"></script>
    <script crossorigin src="https://unpkg.com/graphiql/graphiql.min.js"></script>
    <script crossorigin src="https://unpkg.com/graphql-ws/umd/graphql-ws.min.js"></script>
    <script>
      const wsProto = location.protocol === 'https:' ? 'wss:' : 'ws:';
      const fetcher = GraphiQL.createFetcher({
        url: location.origin + '/graphql',
        subscriptionUrl: wsProto + '//' + location.host + '/graphql',
      });
      ReactDOM.render(
        React.createElement(GraphiQL, { fetcher: fetcher }),
        document.getElementById('graphiql'),
      );
    </script>
  </body>
</html>`

func graphiqlHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(graphiqlPage))
}
