package site

// pageTemplate renders the whole presentation as one scrolling page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body data-live="{{.Live}}" data-socket="{{.SocketPath}}" data-root-margin="{{.RootMargin}}">
  <header class="top-bar">
    <h1 class="deck-title">{{.Title}}</h1>
    {{.Panel}}
  </header>
  <main class="presentation">
{{- range .Pages}}
    <section id="{{.AnchorID}}" class="slide" data-group="{{.Group}}">
      <p class="slide-kicker">{{.GroupLabel}} &middot; {{.Order}}</p>
      {{.Body}}
    </section>
{{- end}}
  </main>
  <script src="{{.BasePath}}script.js"></script>
</body>
</html>
`

// cssContent styles the page and the section panel.
const cssContent = `:root {
  --bg: #ffffff;
  --fg: #1f2328;
  --muted: #656d76;
  --accent: #c2410c;
  --border: #d0d7de;
  --bar-height: 55px;
}
* { box-sizing: border-box; }
html { scroll-padding-top: var(--bar-height); }
body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; color: var(--fg); background: var(--bg); }
.top-bar { position: sticky; top: 0; z-index: 10; height: var(--bar-height); display: flex; align-items: center; gap: 16px; padding: 0 20px; background: var(--bg); border-bottom: 1px solid var(--border); }
.deck-title { font-size: 16px; margin: 0; white-space: nowrap; }
.section-nav { position: relative; flex: 1; }
.section-nav-bar { display: flex; align-items: center; gap: 8px; }
.section-nav button { font: inherit; background: none; border: 1px solid var(--border); border-radius: 6px; padding: 4px 10px; cursor: pointer; }
.section-nav button[disabled] { opacity: .4; cursor: default; }
.nav-progress { color: var(--muted); font-size: 12px; margin-left: 6px; }
.section-nav-menu { display: none; position: absolute; top: 40px; left: 0; min-width: 280px; background: var(--bg); border: 1px solid var(--border); border-radius: 8px; padding: 8px; box-shadow: 0 8px 24px rgba(0,0,0,.12); }
.section-nav.open .section-nav-menu { display: block; }
.nav-group ul { display: none; list-style: none; margin: 4px 0 8px; padding-left: 12px; }
.nav-group.expanded ul { display: block; }
.nav-group-toggle { width: 100%; text-align: left; border: none !important; font-weight: 600; }
.nav-group a { display: block; padding: 3px 6px; color: var(--fg); text-decoration: none; border-radius: 4px; }
.nav-group a.active { background: var(--accent); color: #fff; }
.presentation { max-width: 860px; margin: 0 auto; padding: 0 20px 60vh; }
.slide { padding: 48px 0; border-bottom: 1px solid var(--border); }
.slide-kicker { text-transform: uppercase; letter-spacing: .08em; font-size: 12px; color: var(--muted); }
pre { padding: 12px; border-radius: 6px; overflow-x: auto; }
@media (prefers-reduced-motion: no-preference) { html { scroll-behavior: smooth; } }
`

// jsContent connects the page to the navigator. In static exports it only
// opens and closes the panel; anchors work natively.
const jsContent = `(function () {
  var body = document.body;
  var nav = document.querySelector('.section-nav');
  var live = body.dataset.live === 'true';
  var socket = null;
  var frame = 0;

  function send(msg) {
    if (socket && socket.readyState === WebSocket.OPEN) socket.send(JSON.stringify(msg));
  }

  function viewport() {
    var anchors = {};
    document.querySelectorAll('.slide').forEach(function (el) {
      anchors[el.id] = el.getBoundingClientRect().top;
    });
    return {
      scroll_y: window.scrollY,
      height: window.innerHeight,
      reduced_motion: window.matchMedia('(prefers-reduced-motion: reduce)').matches,
      anchors: anchors
    };
  }

  function setOpen(open) {
    nav.classList.toggle('open', open);
    nav.querySelector('.nav-toggle').setAttribute('aria-expanded', String(open));
  }

  function applyState(st) {
    setOpen(st.open);
    nav.dataset.active = st.active_id;
    nav.querySelectorAll('.nav-step').forEach(function (b) {
      b.disabled = b.dataset.step === '-1' ? !st.has_prev : !st.has_next;
    });
    var toggle = nav.querySelector('.nav-toggle');
    toggle.textContent = st.active_label || 'Sections';
    if (st.progress) {
      var p = document.createElement('span');
      p.className = 'nav-progress';
      p.textContent = st.progress;
      toggle.appendChild(document.createTextNode(' '));
      toggle.appendChild(p);
    }
    (st.groups || []).forEach(function (g) {
      var el = nav.querySelector('.nav-group[data-group="' + CSS.escape(g.group) + '"]');
      if (!el) return;
      el.classList.toggle('expanded', g.expanded);
      el.querySelector('.nav-group-toggle').setAttribute('aria-expanded', String(g.expanded));
      g.items.forEach(function (it) {
        var a = el.querySelector('a[data-section="' + CSS.escape(it.composite_id) + '"]');
        if (!a) return;
        a.classList.toggle('active', it.active);
        if (it.active) a.setAttribute('aria-current', 'true'); else a.removeAttribute('aria-current');
      });
    });
  }

  function receive(ev) {
    var msg = JSON.parse(ev.data);
    switch (msg.type) {
      case 'hello':
        sessionStorage.setItem('brigade.session', msg.session_id);
        break;
      case 'scroll_to':
        window.scrollTo({ top: msg.y || 0, behavior: msg.smooth ? 'smooth' : 'auto' });
        break;
      case 'replace_hash':
        history.replaceState(null, '', msg.hash);
        break;
      case 'state':
        applyState(msg.state);
        break;
      case 'error':
        console.warn('navigator:', msg.message);
        break;
    }
  }

  function connect() {
    var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
    socket = new WebSocket(proto + location.host + body.dataset.socket);
    socket.onmessage = receive;
    socket.onopen = function () {
      send({
        type: 'mount',
        session_id: sessionStorage.getItem('brigade.session') || '',
        hash: location.hash,
        viewport: viewport()
      });
    };
  }

  function schedule(type) {
    if (frame) return;
    frame = requestAnimationFrame(function () {
      frame = 0;
      send({ type: type, viewport: viewport() });
    });
  }

  nav.addEventListener('click', function (ev) {
    var target = ev.target.closest('a, button');
    if (!target) return;
    if (target.classList.contains('nav-toggle')) {
      var open = !nav.classList.contains('open');
      if (live) send({ type: 'open', open: open }); else setOpen(open);
      return;
    }
    if (!live) {
      if (target.tagName === 'A') setOpen(false);
      return;
    }
    if (target.dataset.section) {
      ev.preventDefault();
      send({ type: 'navigate', id: target.dataset.section });
    } else if (target.dataset.step) {
      send({ type: 'step', delta: parseInt(target.dataset.step, 10) });
    } else if (target.classList.contains('nav-group-toggle')) {
      send({ type: 'toggle', group: target.parentElement.dataset.group });
    }
  });

  if (!live) return;

  window.addEventListener('scroll', function () { schedule('scroll'); }, { passive: true });
  window.addEventListener('resize', function () { schedule('resize'); });
  window.addEventListener('hashchange', function () { send({ type: 'hashchange', hash: location.hash }); });

  if ('IntersectionObserver' in window) {
    var observer = new IntersectionObserver(function (entries) {
      entries.forEach(function (e) {
        send({ type: 'intersect', id: e.target.id, intersecting: e.isIntersecting });
      });
      schedule('scroll');
    }, { rootMargin: body.dataset.rootMargin });
    document.querySelectorAll('.slide').forEach(function (el) { observer.observe(el); });
  }

  connect();
})();
`
